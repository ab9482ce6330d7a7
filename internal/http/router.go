package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripbuilder/internal/handlers"
)

func NewRouter(
	tripHandler *handlers.TripHandler,
	passengerHandler *handlers.PassengerHandler,
	contactHandler *handlers.ContactHandler,
	vendorHandler *handlers.VendorHandler,
	syncHandler *handlers.SyncHandler,
	documentHandler *handlers.DocumentHandler,
	fileHandler *handlers.FileHandler,
	fieldHandler *handlers.FieldHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Trips
	tripsAPI := r.PathPrefix("/api/trips").Subrouter()
	tripsAPI.HandleFunc("", tripHandler.ListTrips).Methods("GET")
	tripsAPI.HandleFunc("", tripHandler.CreateTrip).Methods("POST")
	tripsAPI.HandleFunc("/public/{public_id}", tripHandler.GetPublicTrip).Methods("GET")
	tripsAPI.HandleFunc("/{id}", tripHandler.GetTrip).Methods("GET")
	tripsAPI.HandleFunc("/{id}", tripHandler.UpdateTrip).Methods("PUT")
	tripsAPI.HandleFunc("/{id}", tripHandler.DeleteTrip).Methods("DELETE")
	tripsAPI.HandleFunc("/{trip_id}/passengers", passengerHandler.ListByTrip).Methods("GET")
	tripsAPI.HandleFunc("/{trip_id}/files", fileHandler.ListByTrip).Methods("GET")

	// Passengers
	passengersAPI := r.PathPrefix("/api/passengers").Subrouter()
	passengersAPI.HandleFunc("", passengerHandler.Enroll).Methods("POST")
	passengersAPI.HandleFunc("/{id}", passengerHandler.GetPassenger).Methods("GET")
	passengersAPI.HandleFunc("/{id}", passengerHandler.UpdatePassenger).Methods("PUT")
	passengersAPI.HandleFunc("/{id}", passengerHandler.DeletePassenger).Methods("DELETE")
	passengersAPI.HandleFunc("/{id}/stage", passengerHandler.MoveStage).Methods("PUT")
	passengersAPI.HandleFunc("/{id}/documents", documentHandler.GenerateAllDocuments).Methods("POST")
	passengersAPI.HandleFunc("/{id}/documents/{type}", documentHandler.GenerateDocument).Methods("POST")
	passengersAPI.HandleFunc("/{passenger_id}/files", fileHandler.ListByPassenger).Methods("GET")

	// Contacts
	contactsAPI := r.PathPrefix("/api/contacts").Subrouter()
	contactsAPI.HandleFunc("", contactHandler.ListContacts).Methods("GET")
	contactsAPI.HandleFunc("", contactHandler.CreateContact).Methods("POST")
	contactsAPI.HandleFunc("/{id}", contactHandler.GetContact).Methods("GET")
	contactsAPI.HandleFunc("/{id}", contactHandler.UpdateContact).Methods("PUT")
	contactsAPI.HandleFunc("/{id}", contactHandler.DeleteContact).Methods("DELETE")
	contactsAPI.HandleFunc("/{contact_id}/passengers", passengerHandler.ListByContact).Methods("GET")

	// Vendors
	vendorsAPI := r.PathPrefix("/api/vendors").Subrouter()
	vendorsAPI.HandleFunc("", vendorHandler.ListVendors).Methods("GET")
	vendorsAPI.HandleFunc("", vendorHandler.CreateVendor).Methods("POST")
	vendorsAPI.HandleFunc("/import", vendorHandler.ImportVendors).Methods("POST")
	vendorsAPI.HandleFunc("/export", vendorHandler.ExportVendors).Methods("POST")
	vendorsAPI.HandleFunc("/verify", vendorHandler.VerifyVendors).Methods("GET")
	vendorsAPI.HandleFunc("/{name}", vendorHandler.DeleteVendor).Methods("DELETE")

	// Sync
	syncAPI := r.PathPrefix("/api/sync").Subrouter()
	syncAPI.HandleFunc("/full", syncHandler.TriggerFullSync).Methods("POST")
	syncAPI.HandleFunc("/logs", syncHandler.ListSyncLogs).Methods("GET")
	syncAPI.HandleFunc("/trips/{opportunity_id}", syncHandler.PullTrip).Methods("POST")
	syncAPI.HandleFunc("/passengers/{opportunity_id}", syncHandler.PullPassenger).Methods("POST")

	// Webhook receiver for CRM opportunity events
	r.HandleFunc("/webhooks/ghl", syncHandler.Webhook).Methods("POST")

	// Files
	filesAPI := r.PathPrefix("/api/files").Subrouter()
	filesAPI.HandleFunc("", fileHandler.UploadFile).Methods("POST")
	filesAPI.HandleFunc("/{id}/url", fileHandler.GetDownloadURL).Methods("GET")
	filesAPI.HandleFunc("/{id}", fileHandler.DeleteFile).Methods("DELETE")

	// Custom field definitions and dropdown options
	fieldsAPI := r.PathPrefix("/api/fields").Subrouter()
	fieldsAPI.HandleFunc("", fieldHandler.ListFields).Methods("GET")
	fieldsAPI.HandleFunc("/{key}/options", fieldHandler.GetOptions).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
