package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/medipoint-hq/medipoint-gateway/internal/config"
	"github.com/medipoint-hq/medipoint-gateway/internal/fixtures"
	"github.com/medipoint-hq/medipoint-gateway/internal/mockapi"
	"github.com/medipoint-hq/medipoint-gateway/pkg/httpclient"
	"github.com/medipoint-hq/medipoint-gateway/pkg/medipoint"
	"github.com/medipoint-hq/medipoint-gateway/pkg/publishers"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishers.Event
	err    error
	onEvt  func(n int)
}

func (r *recordingPublisher) ID() string   { return "rec" }
func (r *recordingPublisher) Type() string { return "stub" }
func (r *recordingPublisher) Publish(_ context.Context, evt publishers.Event) error {
	r.mu.Lock()
	r.events = append(r.events, evt)
	n := len(r.events)
	r.mu.Unlock()
	if r.onEvt != nil {
		r.onEvt(n)
	}
	return r.err
}

func (r *recordingPublisher) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

type failingTopics struct {
	SnapshotSource
}

func (failingTopics) GetTopics(context.Context, medipoint.TopicParams) (json.RawMessage, error) {
	return nil, &httpclient.APIError{Message: "topics unavailable", StatusCode: http.StatusServiceUnavailable}
}

func mockSource(t *testing.T) (*medipoint.API, string) {
	t.Helper()
	srv := httptest.NewServer(mockapi.NewServer(fixtures.MustLoad()).Handler())
	t.Cleanup(srv.Close)
	client := httpclient.New(httpclient.Config{BaseURL: srv.URL}.Normalize())
	return medipoint.New(client), srv.URL
}

func TestRunOncePublishesEverySnapshotKind(t *testing.T) {
	api, origin := mockSource(t)
	rec := &recordingPublisher{}
	exp := newExporter(api, origin, publishers.NewFanout([]publishers.Publisher{rec}), time.Minute, nil)

	if err := exp.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	want := []string{
		publishers.KindKPISummary,
		publishers.KindTopics,
		publishers.KindChartTopicScores,
		publishers.KindChartSampleSources,
		publishers.KindChartLabelFrequency,
	}
	got := rec.kinds()
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	topics, err := medipoint.Decode[[]map[string]any](rec.events[1].Payload)
	if err != nil {
		t.Fatalf("decode topics payload: %v", err)
	}
	if len(topics) != 4 {
		t.Fatalf("expected all 4 fixture topics, got %d", len(topics))
	}
	if rec.events[0].Source != origin {
		t.Fatalf("source = %s, want %s", rec.events[0].Source, origin)
	}

	labels, err := medipoint.Decode[[]map[string]any](rec.events[4].Payload)
	if err != nil {
		t.Fatalf("decode label payload: %v", err)
	}
	if len(labels) == 0 || len(labels) > 5 {
		t.Fatalf("label frequency should use the default limit, got %d rows", len(labels))
	}
}

func TestRunOnceSkipsFailedFetch(t *testing.T) {
	api, origin := mockSource(t)
	rec := &recordingPublisher{}
	exp := newExporter(failingTopics{api}, origin, publishers.NewFanout([]publishers.Publisher{rec}), time.Minute, nil)

	if err := exp.RunOnce(context.Background()); err != nil {
		t.Fatalf("fetch failures must not fail the run: %v", err)
	}
	for _, k := range rec.kinds() {
		if k == publishers.KindTopics {
			t.Fatalf("topics snapshot should have been skipped")
		}
	}
	if n := len(rec.kinds()); n != 4 {
		t.Fatalf("expected 4 published kinds, got %d", n)
	}
}

func TestRunOnceJoinsPublishErrors(t *testing.T) {
	api, origin := mockSource(t)
	boom := errors.New("sink down")
	rec := &recordingPublisher{err: boom}
	exp := newExporter(api, origin, publishers.NewFanout([]publishers.Publisher{rec}), time.Minute, nil)

	err := exp.RunOnce(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined publish error, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	api, origin := mockSource(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recordingPublisher{onEvt: func(n int) {
		if n == 5 {
			cancel()
		}
	}}
	exp := newExporter(api, origin, publishers.NewFanout([]publishers.Publisher{rec}), time.Hour, nil)

	done := make(chan error, 1)
	go func() { done <- exp.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
	if n := len(rec.kinds()); n != 5 {
		t.Fatalf("expected one initial export of 5 kinds, got %d", n)
	}
}

func TestNewExporterFromPublishersFile(t *testing.T) {
	var mu sync.Mutex
	var received []publishers.Event
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			t.Errorf("decode event: %v", err)
		}
		mu.Lock()
		received = append(received, evt)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer sink.Close()

	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := "publishers:\n  - id: hook\n    type: http\n    http:\n      url: " + sink.URL + "\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers: %v", err)
	}

	api, origin := mockSource(t)
	cfg := &config.Config{PublishersFile: path, ExportInterval: time.Minute}
	exp, err := NewExporter(context.Background(), cfg, api, origin, nil)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	if err := exp.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 5 {
		t.Fatalf("sink received %d events, want 5", len(received))
	}
}

func TestNewExporterRequiresPublishers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := "publishers:\n  - id: hook\n    type: http\n    enabled: false\n    http:\n      url: https://example.com\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers: %v", err)
	}
	_, err := NewExporter(context.Background(), &config.Config{PublishersFile: path, ExportInterval: time.Minute}, nil, "", nil)
	if err == nil {
		t.Fatalf("expected error when every publisher is disabled")
	}
}
