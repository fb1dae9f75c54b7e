package microgreens

import (
	"encoding/json"
	"io"
	"net/http"

	"Estimator/internal/calc"
	"Estimator/internal/logger"
)

// Handler serves the container, microgreens and harvest tools. Defaults
// replaces DefaultContainerInput when set; Catalog supplies the plants when
// a request names none.
type Handler struct {
	Defaults ContainerInput
	Catalog  Catalog
}

func (h *Handler) Container(w http.ResponseWriter, r *http.Request) {
	input := h.defaults()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateContainer(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), calc.HTTPStatus(err))
		return
	}
	calc.WriteJSON(w, res)
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil || (len(raw) > 0 && !json.Valid(raw)) {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	input, err := h.input(r.Context(), raw)
	if err != nil {
		if status := calc.HTTPStatus(err); status != http.StatusInternalServerError {
			http.Error(w, "Calculation error: "+err.Error(), status)
			return
		}
		logger.Logger.Errorw("loading microgreens input", "error", err)
		http.Error(w, "Catalog unavailable", http.StatusInternalServerError)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), calc.HTTPStatus(err))
		return
	}
	calc.WriteJSON(w, res)
}

func (h *Handler) Harvest(w http.ResponseWriter, r *http.Request) {
	input := DefaultHarvestInput()
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

// List serves the plant catalog.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		calc.WriteJSON(w, []Entry{})
		return
	}
	entries, err := h.Catalog.List(r.Context())
	if err != nil {
		logger.Logger.Errorw("listing catalog", "error", err)
		http.Error(w, "Catalog unavailable", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	calc.WriteJSON(w, entries)
}
