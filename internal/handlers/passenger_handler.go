package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tripbuilder/internal/models"
	"tripbuilder/internal/services"

	"github.com/gorilla/mux"
)

type PassengerHandler struct {
	Service *services.PassengerService
}

func NewPassengerHandler(s *services.PassengerService) *PassengerHandler {
	return &PassengerHandler{Service: s}
}

func (h *PassengerHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req models.EnrollPassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	passenger, err := h.Service.Enroll(context.Background(), req)
	if err != nil {
		if errors.Is(err, services.ErrTripFull) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(passenger)
}

func (h *PassengerHandler) GetPassenger(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	passenger, err := h.Service.Get(context.Background(), id)
	if err != nil {
		http.Error(w, "Passenger not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(passenger)
}

func (h *PassengerHandler) ListByTrip(w http.ResponseWriter, r *http.Request) {
	tripIDStr := mux.Vars(r)["trip_id"]
	tripID, _ := strconv.Atoi(tripIDStr)

	passengers, err := h.Service.ListByTrip(context.Background(), tripID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(passengers)
}

func (h *PassengerHandler) ListByContact(w http.ResponseWriter, r *http.Request) {
	contactID := mux.Vars(r)["contact_id"]

	passengers, err := h.Service.ListByContact(context.Background(), contactID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(passengers)
}

func (h *PassengerHandler) UpdatePassenger(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdatePassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	passenger, err := h.Service.Update(context.Background(), id, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(passenger)
}

func (h *PassengerHandler) MoveStage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		StageID string `json:"stage_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StageID == "" {
		http.Error(w, "stage_id is required", http.StatusBadRequest)
		return
	}

	passenger, err := h.Service.MoveStage(context.Background(), id, req.StageID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(passenger)
}

func (h *PassengerHandler) DeletePassenger(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.Delete(context.Background(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}
