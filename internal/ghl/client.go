package ghl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"tripbuilder/internal/metrics"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL is the GHL API v2 endpoint.
	DefaultBaseURL = "https://services.leadconnectorhq.com"

	apiVersion = "2021-07-28"

	// Minimum spacing between calls, measured from the start of the
	// previous call. Fixed interval, no adaptive backoff.
	defaultMinInterval = 100 * time.Millisecond

	maxSearchLimit = 500
)

// APIError is the single error type surfaced by the client. Callers
// distinguish not-found, validation and server failures by StatusCode;
// transport failures carry StatusCode 0.
type APIError struct {
	Message    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("ghl: %s", e.Message)
	}
	return fmt.Sprintf("ghl: %s (status %d)", e.Message, e.StatusCode)
}

// Client wraps the GHL HTTP API with rate limiting and uniform error
// handling. All calls block until the rate gate opens; the application
// makes no concurrent CRM calls by design.
type Client struct {
	http        *resty.Client
	locationID  string
	minInterval time.Duration

	mu       sync.Mutex
	lastCall time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithMinInterval overrides the request spacing. Tests pass zero to
// disable the gate.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) { c.minInterval = d }
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.http.SetBaseURL(url) }
}

// NewClient creates a GHL API client for one location.
func NewClient(locationID, apiToken string, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(DefaultBaseURL).
		SetTimeout(30*time.Second).
		SetHeader("Authorization", "Bearer "+apiToken).
		SetHeader("Version", apiVersion).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{
		http:        httpClient,
		locationID:  locationID,
		minInterval: defaultMinInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LocationID returns the configured GHL location id.
func (c *Client) LocationID() string {
	return c.locationID
}

func (c *Client) gate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.lastCall.IsZero() {
		if wait := c.minInterval - time.Since(c.lastCall); wait > 0 {
			time.Sleep(wait)
		}
	}
	c.lastCall = time.Now()
}

// do performs one API call. Statuses 200/201/202/204 are success; an
// empty or non-JSON success body leaves out untouched (the call itself
// is the result). Everything else becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, query map[string]string, out any) error {
	c.gate()

	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		metrics.GHLRequestsTotal.WithLabelValues(method, "0").Inc()
		return &APIError{Message: fmt.Sprintf("network error: %v", err)}
	}
	metrics.GHLRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode())).Inc()

	switch resp.StatusCode() {
	case 200, 201, 202, 204:
		if out == nil {
			return nil
		}
		raw := bytes.TrimSpace(resp.Body())
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			// Non-JSON body on a success status still counts as success.
			return nil
		}
		return nil
	default:
		return newAPIError(resp.StatusCode(), resp.Body())
	}
}

func newAPIError(status int, body []byte) *APIError {
	msg := fmt.Sprintf("API request failed with status %d", status)
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if m, ok := parsed["message"].(string); ok && m != "" {
			msg = m
		} else if m, ok := parsed["error"].(string); ok && m != "" {
			msg = m
		}
	} else if len(body) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, string(body))
	}
	return &APIError{Message: msg, StatusCode: status, Body: string(body)}
}

// ---------------------------------------------------------------------
// Contacts
// ---------------------------------------------------------------------

// CreateContact creates a contact in the client's location.
func (c *Client) CreateContact(ctx context.Context, in ContactInput) (*Contact, error) {
	in.LocationID = c.locationID
	var env contactEnvelope
	if err := c.do(ctx, "POST", "/contacts/", in, nil, &env); err != nil {
		return nil, err
	}
	return env.Contact, nil
}

// GetContact fetches a contact by id.
func (c *Client) GetContact(ctx context.Context, contactID string) (*Contact, error) {
	var env contactEnvelope
	if err := c.do(ctx, "GET", "/contacts/"+contactID, nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Contact, nil
}

// UpdateContact updates a contact by id.
func (c *Client) UpdateContact(ctx context.Context, contactID string, in ContactInput) (*Contact, error) {
	in.LocationID = ""
	var env contactEnvelope
	if err := c.do(ctx, "PUT", "/contacts/"+contactID, in, nil, &env); err != nil {
		return nil, err
	}
	return env.Contact, nil
}

// DeleteContact deletes a contact by id.
func (c *Client) DeleteContact(ctx context.Context, contactID string) error {
	return c.do(ctx, "DELETE", "/contacts/"+contactID, nil, nil, nil)
}

// ContactSearch holds pagination parameters for SearchContacts. The
// contacts list endpoint pages either by offset or by the
// startAfter/startAfterId cursor from the previous page's meta.
type ContactSearch struct {
	Query        string
	Limit        int
	Offset       int
	StartAfter   int64
	StartAfterID string
}

// SearchContacts lists contacts one page at a time. The caller loops.
func (c *Client) SearchContacts(ctx context.Context, p ContactSearch) (*ContactPage, error) {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	query := map[string]string{
		"locationId": c.locationID,
		"limit":      strconv.Itoa(p.Limit),
	}
	if p.Query != "" {
		query["query"] = p.Query
	}
	if p.StartAfterID != "" {
		query["startAfter"] = strconv.FormatInt(p.StartAfter, 10)
		query["startAfterId"] = p.StartAfterID
	} else if p.Offset > 0 {
		query["offset"] = strconv.Itoa(p.Offset)
	}

	var page ContactPage
	if err := c.do(ctx, "GET", "/contacts/", nil, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ---------------------------------------------------------------------
// Opportunities
// ---------------------------------------------------------------------

// CreateOpportunity creates an opportunity. Name, PipelineID and
// StageID are required by the API.
func (c *Client) CreateOpportunity(ctx context.Context, in OpportunityInput) (*Opportunity, error) {
	if in.LocationID == "" {
		in.LocationID = c.locationID
	}
	var env opportunityEnvelope
	if err := c.do(ctx, "POST", "/opportunities/", in, nil, &env); err != nil {
		return nil, err
	}
	return env.Opportunity, nil
}

// GetOpportunity fetches an opportunity by id, custom fields included.
func (c *Client) GetOpportunity(ctx context.Context, opportunityID string) (*Opportunity, error) {
	var env opportunityEnvelope
	if err := c.do(ctx, "GET", "/opportunities/"+opportunityID, nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Opportunity, nil
}

// UpdateOpportunity updates an opportunity's core fields.
func (c *Client) UpdateOpportunity(ctx context.Context, opportunityID string, in OpportunityInput) (*Opportunity, error) {
	in.LocationID = ""
	var env opportunityEnvelope
	if err := c.do(ctx, "PUT", "/opportunities/"+opportunityID, in, nil, &env); err != nil {
		return nil, err
	}
	return env.Opportunity, nil
}

// DeleteOpportunity deletes an opportunity by id.
func (c *Client) DeleteOpportunity(ctx context.Context, opportunityID string) error {
	return c.do(ctx, "DELETE", "/opportunities/"+opportunityID, nil, nil, nil)
}

// OpportunitySearch holds filters for SearchOpportunities.
type OpportunitySearch struct {
	PipelineID string
	StageID    string
	Query      string
	Limit      int
	Page       int
}

// SearchOpportunities lists opportunities one page at a time via
// POST /opportunities/search. The caller loops over pages.
func (c *Client) SearchOpportunities(ctx context.Context, p OpportunitySearch) (*OpportunityPage, error) {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Limit > maxSearchLimit {
		p.Limit = maxSearchLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}

	body := searchRequest{
		LocationID: c.locationID,
		Limit:      p.Limit,
		Page:       p.Page,
		Filters:    []searchFilter{},
		Query:      p.Query,
	}
	if p.PipelineID != "" {
		body.Filters = append(body.Filters, searchFilter{Field: "pipeline_id", Operator: "eq", Value: p.PipelineID})
	}
	if p.StageID != "" {
		body.Filters = append(body.Filters, searchFilter{Field: "pipeline_stage_id", Operator: "eq", Value: p.StageID})
	}

	var page OpportunityPage
	if err := c.do(ctx, "POST", "/opportunities/search", body, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdateOpportunityStage moves an opportunity to a new stage.
func (c *Client) UpdateOpportunityStage(ctx context.Context, opportunityID, stageID string) error {
	body := map[string]string{"stageId": stageID}
	return c.do(ctx, "PUT", "/opportunities/"+opportunityID+"/status", body, nil, nil)
}

// UpsertOpportunityCustomField sets one custom field value on an
// opportunity, addressed by field key.
func (c *Client) UpsertOpportunityCustomField(ctx context.Context, opportunityID, fieldKey, value string) error {
	body := map[string]any{
		"customFields": map[string]string{fieldKey: value},
	}
	return c.do(ctx, "PUT", "/opportunities/"+opportunityID+"/upsert", body, nil, nil)
}

// ---------------------------------------------------------------------
// Pipelines
// ---------------------------------------------------------------------

// GetPipelines returns all pipelines with their nested stages.
func (c *Client) GetPipelines(ctx context.Context) ([]*Pipeline, error) {
	query := map[string]string{"locationId": c.locationID}
	var env pipelinesEnvelope
	if err := c.do(ctx, "GET", "/opportunities/pipelines", nil, query, &env); err != nil {
		return nil, err
	}
	return env.Pipelines, nil
}

// ---------------------------------------------------------------------
// Custom fields
// ---------------------------------------------------------------------

// GetCustomFields returns the custom field definitions for the
// location, optionally filtered by model ("opportunity" or "contact").
func (c *Client) GetCustomFields(ctx context.Context, model string) ([]*CustomFieldDefinition, error) {
	query := map[string]string{}
	if model != "" {
		query["model"] = model
	}
	var env customFieldsEnvelope
	if err := c.do(ctx, "GET", "/locations/"+c.locationID+"/customFields", nil, query, &env); err != nil {
		return nil, err
	}
	return env.CustomFields, nil
}

// GetCustomFieldByKey finds one custom field definition by its field
// key. Returns nil when the key is not defined.
func (c *Client) GetCustomFieldByKey(ctx context.Context, model, fieldKey string) (*CustomFieldDefinition, error) {
	fields, err := c.GetCustomFields(ctx, model)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if f.FieldKey == fieldKey {
			return f, nil
		}
	}
	return nil, nil
}

// UpdateCustomFieldOptions replaces the dropdown options of a custom
// field definition.
func (c *Client) UpdateCustomFieldOptions(ctx context.Context, fieldID string, options []string) error {
	body := map[string]any{"picklistOptions": options}
	return c.do(ctx, "PUT", "/locations/"+c.locationID+"/customFields/"+fieldID, body, nil, nil)
}
