package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/ui-prompt-relay/internal/store"
)

type generationsResponse struct {
	Object string             `json:"object"`
	Data   []store.Generation `json:"data"`
}

func ListGenerations(hist History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		gens, err := hist.Recent(r.Context(), store.ClampLimit(limit))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, generationsResponse{Object: "list", Data: gens})
	}
}

func GetGeneration(hist History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := hist.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}
