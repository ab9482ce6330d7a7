package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"tripbuilder/internal/ghl"
	"tripbuilder/internal/repositories"
	"tripbuilder/internal/services"

	"github.com/gorilla/mux"
)

type SyncHandler struct {
	FullSync *services.GHLSyncService
	TwoWay   *services.TwoWaySyncService
	Logs     *repositories.SyncLogRepository

	tripPipelineID      string
	passengerPipelineID string
}

func NewSyncHandler(fullSync *services.GHLSyncService, twoWay *services.TwoWaySyncService,
	logs *repositories.SyncLogRepository, tripPipelineID, passengerPipelineID string) *SyncHandler {
	return &SyncHandler{
		FullSync:            fullSync,
		TwoWay:              twoWay,
		Logs:                logs,
		tripPipelineID:      tripPipelineID,
		passengerPipelineID: passengerPipelineID,
	}
}

// TriggerFullSync runs the complete GHL pull. This can take a while
// with large pipelines, so clients should use a generous timeout.
func (h *SyncHandler) TriggerFullSync(w http.ResponseWriter, r *http.Request) {
	result, err := h.FullSync.FullSync(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *SyncHandler) ListSyncLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	logs, err := h.Logs.List(context.Background(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

// PullTrip refreshes one trip from its GHL opportunity on demand.
func (h *SyncHandler) PullTrip(w http.ResponseWriter, r *http.Request) {
	opportunityID := mux.Vars(r)["opportunity_id"]

	trip, err := h.TwoWay.PullTrip(context.Background(), opportunityID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trip)
}

func (h *SyncHandler) PullPassenger(w http.ResponseWriter, r *http.Request) {
	opportunityID := mux.Vars(r)["opportunity_id"]

	passenger, err := h.TwoWay.PullPassenger(context.Background(), opportunityID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(passenger)
}

// Webhook receives GHL opportunity events and pulls the affected
// record. Unknown event shapes are acknowledged and ignored so GHL
// does not retry forever.
func (h *SyncHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var event ghl.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("[SyncHandler] webhook parse: %v", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	opportunityID := event.EventOpportunityID()
	if opportunityID == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	// The pipeline on the event decides which table the record
	// belongs to. Events without a pipeline try the passenger shape
	// first. The pull runs before the ack so failures are logged with
	// the request and a crash cannot lose the event silently; GHL
	// retries on slow acks, and the ingest is idempotent.
	ctx := context.Background()
	switch event.PipelineID {
	case h.tripPipelineID:
		if _, err := h.TwoWay.PullTrip(ctx, opportunityID); err != nil {
			log.Printf("[SyncHandler] webhook pull trip %s: %v", opportunityID, err)
		}
	case h.passengerPipelineID:
		if _, err := h.TwoWay.PullPassenger(ctx, opportunityID); err != nil {
			log.Printf("[SyncHandler] webhook pull passenger %s: %v", opportunityID, err)
		}
	default:
		if _, err := h.TwoWay.PullPassenger(ctx, opportunityID); err != nil {
			if _, err := h.TwoWay.PullTrip(ctx, opportunityID); err != nil {
				log.Printf("[SyncHandler] webhook pull %s: %v", opportunityID, err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}
