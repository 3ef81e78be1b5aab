package fixtures

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/medipoint-hq/medipoint-gateway/internal/domain"
	"gopkg.in/yaml.v3"
)

// Package fixtures holds the static development data served when the remote
// analytics service is unavailable.

//go:embed fixtures.yaml
var raw []byte

// Set is a consistent bundle of topics, suggestions and samples.
type Set struct {
	Topics      []domain.Topic      `yaml:"topics"`
	Suggestions []domain.Suggestion `yaml:"suggestions"`
	Samples     []domain.Sample     `yaml:"samples"`
}

// Load decodes the embedded fixture file.
func Load() (*Set, error) {
	return Parse(raw)
}

// Parse decodes a fixture document.
func Parse(data []byte) (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	for i, t := range set.Topics {
		if strings.TrimSpace(t.ID) == "" {
			return nil, fmt.Errorf("topics[%d]: id is required", i)
		}
	}
	for i, s := range set.Samples {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("samples[%d]: id is required", i)
		}
	}
	return &set, nil
}

// MustLoad is Load for callers that cannot recover from a broken embedded file.
func MustLoad() *Set {
	set, err := Load()
	if err != nil {
		panic(err)
	}
	return set
}

// TopicByID returns the topic with the given id.
func (s *Set) TopicByID(id string) (domain.Topic, bool) {
	for _, t := range s.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Topic{}, false
}

// SampleByID returns the sample with the given id.
func (s *Set) SampleByID(id string) (domain.Sample, bool) {
	for _, sm := range s.Samples {
		if sm.ID == id {
			return sm, true
		}
	}
	return domain.Sample{}, false
}

// SuggestionBySKU returns the suggestion for sku. Suggestions carry no id of
// their own, so the SKU doubles as the identifier.
func (s *Set) SuggestionBySKU(sku string) (domain.Suggestion, bool) {
	for _, sg := range s.Suggestions {
		if sg.SKU == sku {
			return sg, true
		}
	}
	return domain.Suggestion{}, false
}

// FilterTopics returns topics in category; "" and "all" match everything.
func (s *Set) FilterTopics(category string) []domain.Topic {
	out := make([]domain.Topic, 0, len(s.Topics))
	for _, t := range s.Topics {
		if category == "" || category == "all" || t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// FilterSuggestions returns suggestions for topicID; "" matches everything.
func (s *Set) FilterSuggestions(topicID string) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(s.Suggestions))
	for _, sg := range s.Suggestions {
		if topicID == "" || sg.TopicID == topicID {
			out = append(out, sg)
		}
	}
	return out
}

// SampleFilter narrows FilterSamples. Empty fields match everything.
type SampleFilter struct {
	TopicID string
	Label   string
	Source  string
}

// FilterSamples returns samples matching every non-empty field of f.
func (s *Set) FilterSamples(f SampleFilter) []domain.Sample {
	out := make([]domain.Sample, 0, len(s.Samples))
	for _, sm := range s.Samples {
		if f.TopicID != "" && sm.TopicID != f.TopicID {
			continue
		}
		if f.Source != "" && sm.Source != f.Source {
			continue
		}
		if f.Label != "" && !sm.HasLabel(f.Label) {
			continue
		}
		out = append(out, sm)
	}
	return out
}
