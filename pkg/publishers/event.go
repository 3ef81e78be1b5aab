package publishers

import (
	"encoding/json"
	"time"
)

// Snapshot kinds published by the exporter.
const (
	KindKPISummary          = "kpi_summary"
	KindTopics              = "topics"
	KindChartTopicScores    = "chart_topic_scores"
	KindChartSampleSources  = "chart_sample_sources"
	KindChartLabelFrequency = "chart_label_frequency"
)

// Event represents a dashboard snapshot published downstream.
type Event struct {
	Kind        string          `json:"kind"`
	Source      string          `json:"source"`
	Payload     json.RawMessage `json:"payload"`
	CollectedAt time.Time       `json:"collected_at"`
}

// NewEvent constructs an Event for a payload fetched from source.
func NewEvent(kind, source string, payload json.RawMessage) Event {
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return Event{
		Kind:        kind,
		Source:      source,
		Payload:     payload,
		CollectedAt: time.Now().UTC(),
	}
}
