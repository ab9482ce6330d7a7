package models

import "time"

// CustomFieldGroup groups custom fields in GHL (e.g. "Passport Info").
type CustomFieldGroup struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Model      string  `json:"model"`
	PipelineID *string `json:"pipeline_id"`
}

// CustomField is a custom field definition pulled from GHL.
type CustomField struct {
	ID          int      `json:"id"`
	GHLFieldID  string   `json:"ghl_field_id"`
	Name        string   `json:"name"`
	FieldKey    string   `json:"field_key"`
	DataType    string   `json:"data_type"`
	Model       string   `json:"model"`
	Placeholder *string  `json:"placeholder"`
	Options     []string `json:"options"`
	Position    int      `json:"position"`
	GroupID     *string  `json:"custom_field_group_id"`
}

// DropdownCache holds cached dropdown options for a GHL custom field
// so form rendering does not need a live API call.
type DropdownCache struct {
	ID         int       `json:"id"`
	FieldKey   string    `json:"field_key"`
	Options    []string  `json:"options"`
	LastSynced time.Time `json:"last_synced"`
}
