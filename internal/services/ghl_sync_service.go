package services

import (
	"context"
	"fmt"
	"log"

	"tripbuilder/internal/fieldmap"
	"tripbuilder/internal/ghl"
	"tripbuilder/internal/metrics"
	"tripbuilder/internal/models"
)

const contactPageSize = 100

// GHLSyncService pulls the full GHL catalog into the local database:
// pipelines, custom field definitions, contacts, trips, vendors and
// passengers, followed by the trip link pass.
type GHLSyncService struct {
	client   *ghl.Client
	registry *fieldmap.Registry
	twoWay   *TwoWaySyncService
	linker   *TripLinkService
	vendors  *VendorSyncService

	pipelines    PipelineStore
	customFields CustomFieldStore
	fieldMaps    FieldMapStore
	syncLogs     SyncLogStore

	tripPipelineID      string
	passengerPipelineID string
}

func NewGHLSyncService(client *ghl.Client, registry *fieldmap.Registry,
	twoWay *TwoWaySyncService, linker *TripLinkService, vendors *VendorSyncService,
	pipelines PipelineStore, customFields CustomFieldStore, fieldMaps FieldMapStore,
	syncLogs SyncLogStore, tripPipelineID, passengerPipelineID string) *GHLSyncService {
	return &GHLSyncService{
		client:              client,
		registry:            registry,
		twoWay:              twoWay,
		linker:              linker,
		vendors:             vendors,
		pipelines:           pipelines,
		customFields:        customFields,
		fieldMaps:           fieldMaps,
		syncLogs:            syncLogs,
		tripPipelineID:      tripPipelineID,
		passengerPipelineID: passengerPipelineID,
	}
}

// FullSync runs the whole pull in dependency order. A step that dies
// outright marks the log failed and stops; per-record problems are
// collected and produce a partial result instead.
func (s *GHLSyncService) FullSync(ctx context.Context) (*models.SyncLog, error) {
	logID, err := s.syncLogs.Start(ctx, "full")
	if err != nil {
		return nil, err
	}

	total := 0
	var recordErrs []string

	steps := []struct {
		name string
		run  func(context.Context) (int, []string, error)
	}{
		{"pipelines", s.syncPipelines},
		{"custom_fields", s.syncCustomFields},
		{"contacts", s.syncContacts},
		{"trips", s.syncTrips},
		{"vendors", s.syncVendors},
		{"passengers", s.syncPassengers},
		{"trip_links", s.linkTrips},
	}
	for _, step := range steps {
		n, errs, err := step.run(ctx)
		total += n
		recordErrs = append(recordErrs, errs...)
		if err != nil {
			msg := fmt.Sprintf("%s: %v", step.name, err)
			recordErrs = append(recordErrs, msg)
			if ferr := s.syncLogs.Finish(ctx, logID, models.SyncStatusFailed, total, recordErrs); ferr != nil {
				log.Printf("[GHLSync] finish log: %v", ferr)
			}
			metrics.SyncRunsTotal.WithLabelValues("full", models.SyncStatusFailed).Inc()
			return nil, fmt.Errorf("sync %s: %w", step.name, err)
		}
		log.Printf("[GHLSync] %s: %d records", step.name, n)
		metrics.SyncRecordsTotal.WithLabelValues(step.name).Add(float64(n))
	}

	status := models.SyncStatusSuccess
	if len(recordErrs) > 0 {
		status = models.SyncStatusPartial
	}
	if err := s.syncLogs.Finish(ctx, logID, status, total, recordErrs); err != nil {
		return nil, err
	}
	metrics.SyncRunsTotal.WithLabelValues("full", status).Inc()
	return &models.SyncLog{ID: logID, SyncType: "full", Status: status,
		RecordsSynced: total, Errors: recordErrs}, nil
}

func (s *GHLSyncService) syncPipelines(ctx context.Context) (int, []string, error) {
	pipelines, err := s.client.GetPipelines(ctx)
	if err != nil {
		return 0, nil, err
	}
	count := 0
	for _, p := range pipelines {
		m := &models.Pipeline{ID: p.ID, Name: p.Name}
		for _, st := range p.Stages {
			m.Stages = append(m.Stages, &models.PipelineStage{
				ID: st.ID, Name: st.Name, Position: st.Position, PipelineID: p.ID,
			})
		}
		if err := s.pipelines.Upsert(ctx, m); err != nil {
			return count, nil, err
		}
		count++
	}
	return count, nil, nil
}

// syncCustomFields pulls field definitions for both models, stores
// them, and rebuilds the field mapping registry from the live ids.
func (s *GHLSyncService) syncCustomFields(ctx context.Context) (int, []string, error) {
	var all []*ghl.CustomFieldDefinition
	count := 0
	for _, model := range []string{"opportunity", "contact"} {
		defs, err := s.client.GetCustomFields(ctx, model)
		if err != nil {
			return count, nil, err
		}
		for _, d := range defs {
			f := &models.CustomField{
				GHLFieldID: d.ID,
				Name:       d.Name,
				FieldKey:   d.FieldKey,
				DataType:   d.DataType,
				Model:      model,
				Options:    d.OptionValues(),
				Position:   d.Position,
			}
			if d.Placeholder != "" {
				ph := d.Placeholder
				f.Placeholder = &ph
			}
			if d.ParentID != "" {
				gid := d.ParentID
				f.GroupID = &gid
			}
			if err := s.customFields.Upsert(ctx, f); err != nil {
				return count, nil, err
			}
			if len(f.Options) > 0 {
				if err := s.customFields.SaveDropdownOptions(ctx, d.FieldKey, f.Options); err != nil {
					return count, nil, err
				}
			}
			count++
		}
		all = append(all, defs...)
	}

	rows, unmapped := s.registry.Rebuild(all)
	if len(unmapped) > 0 {
		log.Printf("[GHLSync] %d custom fields have no local column", len(unmapped))
	}
	if err := s.fieldMaps.ReplaceAll(ctx, rows); err != nil {
		return count, nil, err
	}
	return count, nil, nil
}

func (s *GHLSyncService) syncContacts(ctx context.Context) (int, []string, error) {
	count := 0
	var errs []string
	search := ghl.ContactSearch{Limit: contactPageSize}
	for {
		page, err := s.client.SearchContacts(ctx, search)
		if err != nil {
			return count, errs, err
		}
		for _, c := range page.Contacts {
			if c.ID == "" {
				errs = append(errs, "contact without id skipped")
				continue
			}
			if err := s.twoWay.contacts.Upsert(ctx, contactFromGHL(c)); err != nil {
				errs = append(errs, fmt.Sprintf("contact %s: %v", c.ID, err))
				continue
			}
			count++
		}
		if len(page.Contacts) < contactPageSize {
			return count, errs, nil
		}
		if page.Meta != nil && page.Meta.StartAfterID != "" {
			search.StartAfter = page.Meta.StartAfter
			search.StartAfterID = page.Meta.StartAfterID
		} else {
			search.Offset += contactPageSize
		}
	}
}

func (s *GHLSyncService) syncTrips(ctx context.Context) (int, []string, error) {
	return s.syncOpportunities(ctx, s.tripPipelineID, func(ctx context.Context, opp *ghl.Opportunity) error {
		_, err := s.twoWay.IngestTripOpportunity(ctx, opp)
		return err
	})
}

func (s *GHLSyncService) syncPassengers(ctx context.Context) (int, []string, error) {
	return s.syncOpportunities(ctx, s.passengerPipelineID, func(ctx context.Context, opp *ghl.Opportunity) error {
		_, err := s.twoWay.IngestPassengerOpportunity(ctx, opp)
		return err
	})
}

func (s *GHLSyncService) syncOpportunities(ctx context.Context, pipelineID string, ingest func(context.Context, *ghl.Opportunity) error) (int, []string, error) {
	count := 0
	fetched := 0
	var errs []string
	for page := 1; ; page++ {
		result, err := s.client.SearchOpportunities(ctx, ghl.OpportunitySearch{
			PipelineID: pipelineID, Limit: 100, Page: page,
		})
		if err != nil {
			return count, errs, err
		}
		if len(result.Opportunities) == 0 {
			return count, errs, nil
		}
		for _, opp := range result.Opportunities {
			if err := ingest(ctx, opp); err != nil {
				errs = append(errs, fmt.Sprintf("opportunity %s: %v", opp.ID, err))
				continue
			}
			count++
		}
		fetched += len(result.Opportunities)
		if total := result.TotalCount(); total > 0 && fetched >= total {
			return count, errs, nil
		}
	}
}

func (s *GHLSyncService) syncVendors(ctx context.Context) (int, []string, error) {
	n, err := s.vendors.ImportFromGHL(ctx)
	return n, nil, err
}

func (s *GHLSyncService) linkTrips(ctx context.Context) (int, []string, error) {
	linked, unmatched, err := s.linker.LinkAll(ctx)
	var errs []string
	for _, name := range unmatched {
		errs = append(errs, fmt.Sprintf("no trip matches %q", name))
	}
	return linked, errs, err
}
