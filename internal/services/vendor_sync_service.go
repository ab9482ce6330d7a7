package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"tripbuilder/internal/cache"
	"tripbuilder/internal/ghl"
	"tripbuilder/internal/models"

	"github.com/jackc/pgx/v5"
)

// VendorFieldKey is the dropdown custom field that holds the vendor
// list in GHL. The local trip_vendors table mirrors its options.
const VendorFieldKey = "opportunity.tripvendor"

var ErrVendorExists = errors.New("vendor already exists")

// VendorSyncService keeps the trip_vendors table and the GHL vendor
// dropdown in step with each other.
type VendorSyncService struct {
	client       *ghl.Client
	vendors      VendorStore
	customFields CustomFieldStore
}

func NewVendorSyncService(client *ghl.Client, vendors VendorStore, customFields CustomFieldStore) *VendorSyncService {
	return &VendorSyncService{client: client, vendors: vendors, customFields: customFields}
}

// ImportFromGHL pulls the dropdown options and inserts any vendor
// names not yet known locally.
func (s *VendorSyncService) ImportFromGHL(ctx context.Context) (int, error) {
	def, err := s.client.GetCustomFieldByKey(ctx, "opportunity", VendorFieldKey)
	if err != nil {
		return 0, err
	}
	if def == nil {
		return 0, fmt.Errorf("custom field %s is not defined in GHL", VendorFieldKey)
	}
	options := def.OptionValues()
	count := 0
	for _, name := range options {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := s.vendors.UpsertByName(ctx, name); err != nil {
			return count, err
		}
		count++
	}
	if err := s.customFields.SaveDropdownOptions(ctx, VendorFieldKey, options); err != nil {
		return count, err
	}
	cache.InvalidateDropdown(ctx, VendorFieldKey)
	return count, nil
}

// ExportToGHL replaces the dropdown options with the local vendor
// list.
func (s *VendorSyncService) ExportToGHL(ctx context.Context) error {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(vendors))
	for _, v := range vendors {
		names = append(names, v.Name)
	}
	sort.Strings(names)

	def, err := s.client.GetCustomFieldByKey(ctx, "opportunity", VendorFieldKey)
	if err != nil {
		return err
	}
	if def == nil {
		return fmt.Errorf("custom field %s is not defined in GHL", VendorFieldKey)
	}
	if err := s.client.UpdateCustomFieldOptions(ctx, def.ID, names); err != nil {
		return err
	}
	cache.InvalidateDropdown(ctx, VendorFieldKey)
	return s.customFields.SaveDropdownOptions(ctx, VendorFieldKey, names)
}

// AddVendor stores the vendor locally and appends it to the dropdown
// if the option is not already there.
func (s *VendorSyncService) AddVendor(ctx context.Context, req models.CreateVendorRequest) (*models.TripVendor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("vendor name is required")
	}
	if _, err := s.vendors.GetByName(ctx, name); err == nil {
		return nil, ErrVendorExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if err := s.vendors.UpsertByName(ctx, name); err != nil {
		return nil, err
	}
	vendor, err := s.vendors.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	def, err := s.client.GetCustomFieldByKey(ctx, "opportunity", VendorFieldKey)
	if err != nil || def == nil {
		log.Printf("[VendorSync] dropdown lookup: %v", err)
		return vendor, nil
	}
	options := def.OptionValues()
	for _, o := range options {
		if strings.EqualFold(o, name) {
			return vendor, nil
		}
	}
	options = append(options, name)
	if err := s.client.UpdateCustomFieldOptions(ctx, def.ID, options); err != nil {
		log.Printf("[VendorSync] dropdown update: %v", err)
		return vendor, nil
	}
	if err := s.customFields.SaveDropdownOptions(ctx, VendorFieldKey, options); err != nil {
		return vendor, err
	}
	cache.InvalidateDropdown(ctx, VendorFieldKey)
	return vendor, nil
}

// RemoveVendor deletes the vendor locally and drops its dropdown
// option.
func (s *VendorSyncService) RemoveVendor(ctx context.Context, name string) error {
	vendor, err := s.vendors.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.vendors.Delete(ctx, vendor.ID); err != nil {
		return err
	}

	def, err := s.client.GetCustomFieldByKey(ctx, "opportunity", VendorFieldKey)
	if err != nil {
		return err
	}
	if def == nil {
		return fmt.Errorf("custom field %s is not defined in GHL", VendorFieldKey)
	}
	options := def.OptionValues()
	kept := options[:0]
	for _, o := range options {
		if !strings.EqualFold(o, name) {
			kept = append(kept, o)
		}
	}
	if err := s.client.UpdateCustomFieldOptions(ctx, def.ID, kept); err != nil {
		return err
	}
	cache.InvalidateDropdown(ctx, VendorFieldKey)
	return s.customFields.SaveDropdownOptions(ctx, VendorFieldKey, kept)
}

// Verify reports vendors present on one side only.
func (s *VendorSyncService) Verify(ctx context.Context) (missingLocal, missingRemote []string, err error) {
	def, err := s.client.GetCustomFieldByKey(ctx, "opportunity", VendorFieldKey)
	if err != nil {
		return nil, nil, err
	}
	if def == nil {
		return nil, nil, fmt.Errorf("custom field %s is not defined in GHL", VendorFieldKey)
	}
	remote := map[string]string{}
	for _, o := range def.OptionValues() {
		remote[strings.ToLower(o)] = o
	}

	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	local := map[string]string{}
	for _, v := range vendors {
		local[strings.ToLower(v.Name)] = v.Name
	}

	for k, name := range remote {
		if _, ok := local[k]; !ok {
			missingLocal = append(missingLocal, name)
		}
	}
	for k, name := range local {
		if _, ok := remote[k]; !ok {
			missingRemote = append(missingRemote, name)
		}
	}
	sort.Strings(missingLocal)
	sort.Strings(missingRemote)
	if len(missingLocal) > 0 || len(missingRemote) > 0 {
		return missingLocal, missingRemote, fmt.Errorf("vendor lists differ: %d missing locally, %d missing in GHL",
			len(missingLocal), len(missingRemote))
	}
	return nil, nil, nil
}
