package hydrogen

import (
	"encoding/json"
	"net/http"

	"Estimator/internal/calc"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	input := DefaultInput()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), calc.HTTPStatus(err))
		return
	}
	calc.WriteJSON(w, res)
}

func (h *Handler) Compress(w http.ResponseWriter, r *http.Request) {
	input := DefaultCompressInput()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CompressGas(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), calc.HTTPStatus(err))
		return
	}
	calc.WriteJSON(w, res)
}
