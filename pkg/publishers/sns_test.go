package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSNSPublisherPublish(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:us-east-1:123456789012:dashboard",
		client:   client,
		log:      discardLogger{},
	}

	if err := pub.Publish(context.Background(), NewEvent(KindChartLabelFrequency, "src", []byte(`[]`))); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:us-east-1:123456789012:dashboard" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr := client.input.MessageAttributes["kind"]
	if aws.ToString(attr.StringValue) != KindChartLabelFrequency {
		t.Fatalf("kind attribute = %q", aws.ToString(attr.StringValue))
	}
	if msg := aws.ToString(client.input.Message); !strings.Contains(msg, `"kind":"chart_label_frequency"`) {
		t.Fatalf("message missing kind: %s", msg)
	}
}

func TestSNSPublisherPublishError(t *testing.T) {
	pub := &snsPublisher{
		id:     "topic",
		typ:    TypeSNS,
		client: &fakeSNSClient{err: errors.New("throttled")},
		log:    discardLogger{},
	}

	if err := pub.Publish(context.Background(), NewEvent(KindTopics, "src", nil)); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestNewSNSPublisherRequiresConfig(t *testing.T) {
	if _, err := newSNSPublisher(context.Background(), PublisherConfig{ID: "x", Type: TypeSNS}, nil); err == nil {
		t.Fatalf("expected error for missing sns block")
	}
}
