package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"tripbuilder/internal/services"

	"github.com/gorilla/mux"
)

const maxUploadSize = 25 << 20 // 25 MB

type FileHandler struct {
	Service *services.FileService
}

func NewFileHandler(s *services.FileService) *FileHandler {
	return &FileHandler{Service: s}
}

// UploadFile accepts a multipart form upload. Form fields: file,
// file_type, trip_name, passenger_name, and optionally trip_id,
// passenger_id and public.
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize))
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	fileType := r.FormValue("file_type")
	if fileType == "" {
		fileType = "documents"
	}

	params := services.UploadParams{
		TripName:      r.FormValue("trip_name"),
		PassengerName: r.FormValue("passenger_name"),
		FileType:      fileType,
		Filename:      header.Filename,
		ContentType:   header.Header.Get("Content-Type"),
		Data:          data,
		IsPublic:      r.FormValue("public") == "true",
	}
	if tripID, err := strconv.Atoi(r.FormValue("trip_id")); err == nil && tripID > 0 {
		params.TripID = &tripID
	}
	if passengerID := r.FormValue("passenger_id"); passengerID != "" {
		params.PassengerID = &passengerID
	}

	file, err := h.Service.Upload(context.Background(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(file)
}

// GetDownloadURL returns a pre-signed URL for the stored file.
func (h *FileHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	file, err := h.Service.Get(context.Background(), id)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	var url string
	if file.IsPublic {
		url = h.Service.PublicURL(file.S3Key)
	} else {
		url, err = h.Service.DownloadURL(context.Background(), file.S3Key)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}

func (h *FileHandler) ListByTrip(w http.ResponseWriter, r *http.Request) {
	tripIDStr := mux.Vars(r)["trip_id"]
	tripID, _ := strconv.Atoi(tripIDStr)

	files, err := h.Service.ListByTrip(context.Background(), tripID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

func (h *FileHandler) ListByPassenger(w http.ResponseWriter, r *http.Request) {
	passengerID := mux.Vars(r)["passenger_id"]

	files, err := h.Service.ListByPassenger(context.Background(), passengerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	if err := h.Service.Delete(context.Background(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}
