package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tripbuilder/internal/ghl"
	"tripbuilder/internal/models"
	"tripbuilder/internal/repositories"
)

// DocumentService generates the passenger documents, stores them in
// S3, records the URL on the passenger row and pushes it to the
// matching GHL custom field.
type DocumentService struct {
	pdf        *PDFService
	files      *FileService
	passengers *repositories.PassengerRepository
	trips      *repositories.TripRepository
	contacts   *repositories.ContactRepository
	client     *ghl.Client
}

func NewDocumentService(pdf *PDFService, files *FileService,
	passengers *repositories.PassengerRepository, trips *repositories.TripRepository,
	contacts *repositories.ContactRepository, client *ghl.Client) *DocumentService {
	return &DocumentService{
		pdf:        pdf,
		files:      files,
		passengers: passengers,
		trips:      trips,
		contacts:   contacts,
		client:     client,
	}
}

// Generate renders one document for the passenger. The S3 key lands
// on the passenger row and in the opportunity's custom field, so GHL
// workflows can reach the file.
func (s *DocumentService) Generate(ctx context.Context, passengerID, docType string) (*models.File, error) {
	p, err := s.passengers.Get(ctx, passengerID)
	if err != nil {
		return nil, fmt.Errorf("passenger %s: %w", passengerID, err)
	}
	if p.TripID == nil {
		return nil, errors.New("passenger is not linked to a trip")
	}
	trip, err := s.trips.Get(ctx, *p.TripID)
	if err != nil {
		return nil, fmt.Errorf("trip %d: %w", *p.TripID, err)
	}
	contact, err := s.contacts.Get(ctx, p.ContactID)
	if err != nil {
		return nil, fmt.Errorf("contact %s: %w", p.ContactID, err)
	}

	var data []byte
	switch docType {
	case DocReservation:
		data, _, err = s.pdf.GenerateReservation(p, trip, contact)
	case DocMOU:
		data, _, err = s.pdf.GenerateMOU(p, trip, contact)
	case DocAffidavit:
		data, _, err = s.pdf.GenerateAffidavit(p, trip, contact)
	default:
		return nil, fmt.Errorf("unknown document type %q", docType)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", docType, err)
	}

	file, err := s.files.Upload(ctx, UploadParams{
		TripName:      strOr(trip.Name, "unassigned"),
		PassengerName: contactFullName(contact),
		FileType:      "documents",
		Filename:      docType + ".pdf",
		ContentType:   "application/pdf",
		Data:          data,
		TripID:        &trip.ID,
		PassengerID:   &p.ID,
	})
	if err != nil {
		return nil, err
	}

	url, err := s.files.DownloadURL(ctx, file.S3Key)
	if err != nil {
		log.Printf("[DocumentService] presign %s: %v", file.S3Key, err)
		url = file.S3Key
	}
	if err := s.passengers.SetDocumentURL(ctx, p.ID, docType, url); err != nil {
		return nil, err
	}

	fieldKey := "opportunity." + strings.ToLower(docType)
	if err := s.client.UpsertOpportunityCustomField(ctx, p.ID, fieldKey, url); err != nil {
		log.Printf("[DocumentService] push %s to %s: %v", fieldKey, p.ID, err)
	}
	return file, nil
}

// GenerateAll renders the three documents, reporting the keys that
// worked. One document failing does not stop the others.
func (s *DocumentService) GenerateAll(ctx context.Context, passengerID string) (map[string]string, error) {
	results := map[string]string{}
	var lastErr error
	for _, docType := range []string{DocMOU, DocAffidavit, DocReservation} {
		file, err := s.Generate(ctx, passengerID, docType)
		if err != nil {
			log.Printf("[DocumentService] %s for %s: %v", docType, passengerID, err)
			lastErr = err
			continue
		}
		results[docType] = file.S3Key
	}
	if len(results) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return results, nil
}
