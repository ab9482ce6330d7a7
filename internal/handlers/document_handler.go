package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"tripbuilder/internal/services"

	"github.com/gorilla/mux"
)

type DocumentHandler struct {
	Service *services.DocumentService
}

func NewDocumentHandler(s *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{Service: s}
}

// GenerateDocument renders one of reservation, mou or affidavit for
// the passenger and stores it in S3.
func (h *DocumentHandler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	passengerID := vars["id"]
	docType := vars["type"]

	file, err := h.Service.Generate(context.Background(), passengerID, docType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(file)
}

func (h *DocumentHandler) GenerateAllDocuments(w http.ResponseWriter, r *http.Request) {
	passengerID := mux.Vars(r)["id"]

	results, err := h.Service.GenerateAll(context.Background(), passengerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
