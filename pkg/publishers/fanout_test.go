package publishers

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id    string
	typ   string
	err   error
	calls int
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

type closingPublisher struct {
	stubPublisher
	closed   bool
	closeErr error
}

func (c *closingPublisher) Close() error {
	c.closed = true
	return c.closeErr
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	ok := &stubPublisher{id: "ok", typ: TypeHTTP}
	bad := &stubPublisher{id: "bad", typ: TypeSQS, err: errors.New("failed")}
	fanout := NewFanout([]Publisher{ok, nil, bad})

	if fanout.Size() != 2 {
		t.Fatalf("nil publishers should be dropped, size=%d", fanout.Size())
	}
	count, err := fanout.Publish(context.Background(), NewEvent(KindTopics, "src", nil))
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Fatalf("every publisher should be called once, got ok=%d bad=%d", ok.calls, bad.calls)
	}
}

func TestFanoutNilIsEmpty(t *testing.T) {
	var f *Fanout
	if n, err := f.Publish(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("nil fanout publish = %d, %v", n, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("nil fanout close: %v", err)
	}
}

func TestFanoutCloseClosesClosers(t *testing.T) {
	c1 := &closingPublisher{stubPublisher: stubPublisher{id: "c1", typ: TypeGCPPubSub}}
	c2 := &closingPublisher{stubPublisher: stubPublisher{id: "c2", typ: TypeGCPPubSub}, closeErr: errors.New("close failed")}
	fanout := NewFanout([]Publisher{c1, &stubPublisher{id: "plain"}, c2})

	if err := fanout.Close(); err == nil {
		t.Fatalf("expected close error to surface")
	}
	if !c1.closed || !c2.closed {
		t.Fatalf("all closers should be closed: c1=%v c2=%v", c1.closed, c2.closed)
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 || pubs[0].Type() != TypeHTTP {
		t.Fatalf("expected 1 http publisher, got %#v", pubs)
	}
}

func TestBuildAllUnknownType(t *testing.T) {
	_, err := BuildAll(context.Background(), DefaultRegistry(), []PublisherConfig{
		{ID: "kafka", Type: "kafka"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for unregistered type")
	}
}
