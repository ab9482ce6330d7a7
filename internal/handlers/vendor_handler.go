package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"tripbuilder/internal/models"
	"tripbuilder/internal/services"

	"github.com/gorilla/mux"
)

type VendorHandler struct {
	Sync    *services.VendorSyncService
	Vendors services.VendorStore
}

func NewVendorHandler(sync *services.VendorSyncService, vendors services.VendorStore) *VendorHandler {
	return &VendorHandler{Sync: sync, Vendors: vendors}
}

func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Vendors.List(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vendors)
}

func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	vendor, err := h.Sync.AddVendor(context.Background(), req)
	if err != nil {
		if errors.Is(err, services.ErrVendorExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(vendor)
}

func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.Sync.RemoveVendor(context.Background(), name); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}

func (h *VendorHandler) ImportVendors(w http.ResponseWriter, r *http.Request) {
	count, err := h.Sync.ImportFromGHL(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"imported": count})
}

func (h *VendorHandler) ExportVendors(w http.ResponseWriter, r *http.Request) {
	if err := h.Sync.ExportToGHL(context.Background()); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "exported"})
}

func (h *VendorHandler) VerifyVendors(w http.ResponseWriter, r *http.Request) {
	missingLocal, missingRemote, err := h.Sync.Verify(context.Background())

	resp := map[string]any{
		"in_sync":        err == nil,
		"missing_local":  missingLocal,
		"missing_remote": missingRemote,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
