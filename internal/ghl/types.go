package ghl

import "encoding/json"

// Contact is the wire form of a GHL contact.
type Contact struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Address1    string   `json:"address1"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	PostalCode  string   `json:"postalCode"`
	Country     string   `json:"country"`
	CompanyName string   `json:"companyName"`
	Website     string   `json:"website"`
	Tags        []string `json:"tags"`
	Source      string   `json:"source"`
}

// ContactInput is the request body for creating or updating a contact.
// LocationID is filled in by the client.
type ContactInput struct {
	LocationID  string `json:"locationId,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address1    string `json:"address1,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Country     string `json:"country,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Website     string `json:"website,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Source      string `json:"source,omitempty"`
}

// ContactPage is one page of a contact search.
type ContactPage struct {
	Contacts []*Contact `json:"contacts"`
	Total    int        `json:"total"`
	Meta     *PageMeta  `json:"meta"`
}

// PageMeta carries cursor pagination info on list endpoints.
type PageMeta struct {
	Total        int    `json:"total"`
	NextPageURL  string `json:"nextPageUrl"`
	StartAfter   int64  `json:"startAfter"`
	StartAfterID string `json:"startAfterId"`
}

// CustomFieldValue is one custom field entry on an opportunity.
// The value sits under a type-suffixed key depending on the field's
// declared type, with fieldValue as the generic fallback.
type CustomFieldValue struct {
	ID                string   `json:"id"`
	Key               string   `json:"key,omitempty"`
	FieldValueString  *string  `json:"fieldValueString,omitempty"`
	FieldValueNumber  *float64 `json:"fieldValueNumber,omitempty"`
	FieldValueBoolean *bool    `json:"fieldValueBoolean,omitempty"`
	FieldValueDate    any      `json:"fieldValueDate,omitempty"`
	FieldValue        any      `json:"fieldValue,omitempty"`
}

// RawValue returns the typed value when present, falling back to the
// generic fieldValue key. Returns nil when the entry carries no value.
func (v CustomFieldValue) RawValue() any {
	switch {
	case v.FieldValueString != nil:
		return *v.FieldValueString
	case v.FieldValueNumber != nil:
		return *v.FieldValueNumber
	case v.FieldValueBoolean != nil:
		return *v.FieldValueBoolean
	case v.FieldValueDate != nil:
		return v.FieldValueDate
	default:
		return v.FieldValue
	}
}

// Opportunity is the wire form of a GHL opportunity.
type Opportunity struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	PipelineID      string             `json:"pipelineId"`
	PipelineStageID string             `json:"pipelineStageId"`
	Status          string             `json:"status"`
	ContactID       string             `json:"contactId"`
	MonetaryValue   float64            `json:"monetaryValue"`
	CustomFields    []CustomFieldValue `json:"customFields"`
	Contact         *Contact           `json:"contact,omitempty"`
}

// OpportunityInput is the request body for creating or updating an
// opportunity. CustomFields maps field keys to encoded string values.
type OpportunityInput struct {
	Name         string            `json:"name,omitempty"`
	PipelineID   string            `json:"pipelineId,omitempty"`
	StageID      string            `json:"stageId,omitempty"`
	ContactID    string            `json:"contactId,omitempty"`
	LocationID   string            `json:"locationId,omitempty"`
	Status       string            `json:"status,omitempty"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}

// OpportunityPage is one page of an opportunity search.
type OpportunityPage struct {
	Opportunities []*Opportunity `json:"opportunities"`
	Total         int            `json:"total"`
	Meta          *PageMeta      `json:"meta"`
}

// TotalCount returns the page's total record count, whichever key the
// API populated.
func (p *OpportunityPage) TotalCount() int {
	if p.Total > 0 {
		return p.Total
	}
	if p.Meta != nil {
		return p.Meta.Total
	}
	return 0
}

// Pipeline is a GHL pipeline with its nested stages.
type Pipeline struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Stages []Stage `json:"stages"`
}

// Stage is one step within a pipeline.
type Stage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// CustomFieldDefinition is a custom field as defined in GHL.
type CustomFieldDefinition struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	FieldKey        string   `json:"fieldKey"`
	DataType        string   `json:"dataType"`
	Model           string   `json:"model"`
	Placeholder     string   `json:"placeholder"`
	Position        int      `json:"position"`
	ParentID        string   `json:"parentId"`
	PicklistOptions []string `json:"picklistOptions"`
	Options         []string `json:"options"`
}

// OptionValues returns the field's enumerated options regardless of
// which key the API used.
func (d CustomFieldDefinition) OptionValues() []string {
	if len(d.PicklistOptions) > 0 {
		return d.PicklistOptions
	}
	return d.Options
}

type contactEnvelope struct {
	Contact *Contact `json:"contact"`
}

type opportunityEnvelope struct {
	Opportunity *Opportunity `json:"opportunity"`
}

type pipelinesEnvelope struct {
	Pipelines []*Pipeline `json:"pipelines"`
}

type customFieldsEnvelope struct {
	CustomFields []*CustomFieldDefinition `json:"customFields"`
}

type searchRequest struct {
	LocationID string         `json:"locationId"`
	Limit      int            `json:"limit"`
	Page       int            `json:"page"`
	Filters    []searchFilter `json:"filters"`
	Query      string         `json:"query,omitempty"`
}

type searchFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// WebhookEvent is the payload GHL posts to the webhook endpoint on
// opportunity lifecycle events.
type WebhookEvent struct {
	Type          string          `json:"type"`
	LocationID    string          `json:"locationId"`
	ID            string          `json:"id"`
	OpportunityID string          `json:"opportunityId"`
	PipelineID    string          `json:"pipelineId"`
	Raw           json.RawMessage `json:"-"`
}

// EventOpportunityID returns the opportunity id, wherever the event
// variant put it.
func (e WebhookEvent) EventOpportunityID() string {
	if e.OpportunityID != "" {
		return e.OpportunityID
	}
	return e.ID
}
