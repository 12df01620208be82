package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventResumeParsed = "resume.parsed"
	EventResumeFailed = "resume.failed"
)

// Exchange names
const (
	ExchangeResumeEvents = "resume.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// ResumeParsedEvent is published after a document was parsed.
// It carries counts only; extracted values never leave the process.
type ResumeParsedEvent struct {
	JobID           string   `json:"job_id,omitempty"`
	ContentType     string   `json:"content_type"`
	PageCount       int      `json:"page_count"`
	FieldsExtracted []string `json:"fields_extracted"`
	SkillCount      int      `json:"skill_count"`
	DurationMS      int64    `json:"duration_ms"`
}

// ResumeFailedEvent is published when an extraction job fails
type ResumeFailedEvent struct {
	JobID       string `json:"job_id,omitempty"`
	ContentType string `json:"content_type"`
	ErrorCode   string `json:"error_code"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return uuid.New().String()
}
