package models

import "time"

// File tracks an object uploaded to S3 (passports, signatures,
// generated PDFs) and links it back to a trip or passenger.
type File struct {
	ID              int       `json:"id"`
	Filename        string    `json:"filename"`
	S3Key           string    `json:"s3_key"`
	FileType        string    `json:"file_type"`
	ContentType     *string   `json:"content_type"`
	FileSize        *int      `json:"file_size"`
	IsPublic        bool      `json:"is_public"`
	OpportunityType *string   `json:"opportunity_type"`
	TripID          *int      `json:"trip_id"`
	PassengerID     *string   `json:"passenger_id"`
	UploadedAt      time.Time `json:"uploaded_at"`
	UploadedBy      *string   `json:"uploaded_by"`
}
