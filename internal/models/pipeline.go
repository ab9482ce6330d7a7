package models

// Pipeline is a GHL pipeline definition. Two matter here:
// TripBooking and Passenger.
type Pipeline struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Stages []*PipelineStage `json:"stages,omitempty"`
}

// PipelineStage is one ordered step within a pipeline.
type PipelineStage struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   int    `json:"position"`
	PipelineID string `json:"pipeline_id"`
}
