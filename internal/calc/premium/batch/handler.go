package batch

import (
	"encoding/json"
	"net/http"

	"Estimator/internal/calc"
	"Estimator/internal/calc/quadcopter"
)

type Handler struct{}

// Quadcopter accepts either explicit items or a base input with altitudes.
func (h *Handler) Quadcopter(w http.ResponseWriter, r *http.Request) {
	input := struct {
		Items []quadcopter.Input `json:"items"`
		SweepInput
	}{SweepInput: DefaultSweepInput()}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	items := input.Items
	if len(items) == 0 {
		items = input.SweepInput.Items()
	}
	res, err := CalculateQuadcopter(QuadcopterBatchInput{Items: items})
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), calc.HTTPStatus(err))
		return
	}
	calc.WriteJSON(w, res)
}

func (h *Handler) Harvest(w http.ResponseWriter, r *http.Request) {
	var input HarvestBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateHarvest(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), calc.HTTPStatus(err))
		return
	}
	calc.WriteJSON(w, res)
}
