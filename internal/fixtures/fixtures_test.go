package fixtures

import (
	"testing"

	"github.com/medipoint-hq/medipoint-gateway/internal/domain"
)

func TestLoadEmbeddedFixtures(t *testing.T) {
	set, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set.Topics) != 4 || len(set.Suggestions) != 3 || len(set.Samples) != 4 {
		t.Fatalf("unexpected sizes: %d topics, %d suggestions, %d samples",
			len(set.Topics), len(set.Suggestions), len(set.Samples))
	}

	t1, ok := set.TopicByID("t1")
	if !ok {
		t.Fatalf("expected topic t1")
	}
	if t1.Trend != domain.TrendUp || t1.Delta != "+248%" || t1.Score != 92 || t1.SnippetCount != 34 {
		t.Fatalf("unexpected t1: %+v", t1)
	}

	s1, ok := set.SampleByID("s1")
	if !ok {
		t.Fatalf("expected sample s1")
	}
	if s1.Meta.Brand != "BrandA" || len(s1.Labels) != 3 || s1.Time != "2025-11-16 09:12" {
		t.Fatalf("unexpected s1: %+v", s1)
	}
}

func TestFixtureTopicReferencesResolve(t *testing.T) {
	set := MustLoad()
	for _, sg := range set.Suggestions {
		if _, ok := set.TopicByID(sg.TopicID); !ok {
			t.Fatalf("suggestion %s references unknown topic %s", sg.SKU, sg.TopicID)
		}
	}
	for _, sm := range set.Samples {
		if _, ok := set.TopicByID(sm.TopicID); !ok {
			t.Fatalf("sample %s references unknown topic %s", sm.ID, sm.TopicID)
		}
	}
}

func TestFilters(t *testing.T) {
	set := MustLoad()

	if got := set.FilterTopics("health"); len(got) != 2 {
		t.Fatalf("expected 2 health topics, got %d", len(got))
	}
	if got := set.FilterTopics("all"); len(got) != 4 {
		t.Fatalf("expected all topics, got %d", len(got))
	}
	if got := set.FilterSuggestions("t3"); len(got) != 1 || got[0].SKU != "DIAPER-M-360" {
		t.Fatalf("unexpected suggestions for t3: %+v", got)
	}
	if got := set.FilterSamples(SampleFilter{Label: "缺貨"}); len(got) != 2 {
		t.Fatalf("expected 2 out-of-stock samples, got %d", len(got))
	}
	if got := set.FilterSamples(SampleFilter{TopicID: "t1", Source: "PTT"}); len(got) != 1 || got[0].ID != "s2" {
		t.Fatalf("unexpected samples: %+v", got)
	}
}

func TestParseRejectsMissingIDs(t *testing.T) {
	doc := []byte("topics:\n  - topic: nameless\n")
	if _, err := Parse(doc); err == nil {
		t.Fatalf("expected error for topic without id")
	}
}
