package medipoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/medipoint-hq/medipoint-gateway/pkg/httpclient"
)

// Paths of the remote endpoints.
const (
	PathKPISummary          = "/kpi/summary"
	PathTopics              = "/topics"
	PathSuggestions         = "/suggestions"
	PathSamples             = "/samples"
	PathChartTopicScores    = "/charts/topic-scores"
	PathChartSampleSources  = "/charts/sample-sources"
	PathChartLabelFrequency = "/charts/label-frequency"
	PathSalesTrends         = "/erp/sales-trends"
	PathStock               = "/erp/stock"
)

// API exposes one method per remote capability. Every method returns the
// transport result unchanged: the response payload or the transport error.
type API struct {
	client httpclient.Client
}

// New builds the endpoint catalog on top of client.
func New(client httpclient.Client) *API {
	return &API{client: client}
}

// GetKPISummary fetches the landing page KPI figures.
func (a *API) GetKPISummary(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, PathKPISummary, nil)
}

// GetTopics lists topics, optionally filtered by category.
func (a *API) GetTopics(ctx context.Context, params TopicParams) (json.RawMessage, error) {
	return a.get(ctx, PathTopics, params.values())
}

// GetTopicByID fetches a single topic.
func (a *API) GetTopicByID(ctx context.Context, topicID string) (json.RawMessage, error) {
	return a.get(ctx, resourcePath(PathTopics, topicID), nil)
}

// GetSuggestions lists restocking suggestions.
func (a *API) GetSuggestions(ctx context.Context, params SuggestionParams) (json.RawMessage, error) {
	return a.get(ctx, PathSuggestions, params.values())
}

// GetSuggestionByID fetches a single suggestion.
func (a *API) GetSuggestionByID(ctx context.Context, suggestionID string) (json.RawMessage, error) {
	return a.get(ctx, resourcePath(PathSuggestions, suggestionID), nil)
}

// GetSamples lists discussion samples.
func (a *API) GetSamples(ctx context.Context, params SampleParams) (json.RawMessage, error) {
	return a.get(ctx, PathSamples, params.values())
}

// GetSampleByID fetches a single sample.
func (a *API) GetSampleByID(ctx context.Context, sampleID string) (json.RawMessage, error) {
	return a.get(ctx, resourcePath(PathSamples, sampleID), nil)
}

// GetChartTopicScores fetches the topic heat score ranking.
func (a *API) GetChartTopicScores(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, PathChartTopicScores, nil)
}

// GetChartSampleSources fetches the sample source distribution.
func (a *API) GetChartSampleSources(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, PathChartSampleSources, nil)
}

// GetChartLabelFrequency fetches the top-N label counts. A zero limit requests
// the top 5; other values are sent as given.
func (a *API) GetChartLabelFrequency(ctx context.Context, limit int) (json.RawMessage, error) {
	if limit == 0 {
		limit = defaultLabelFrequencyLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return a.get(ctx, PathChartLabelFrequency, q)
}

// GetSalesTrends fetches ERP sales trends for skus. An empty period requests 7d.
func (a *API) GetSalesTrends(ctx context.Context, skus SKUs, period string) (json.RawMessage, error) {
	if period == "" {
		period = defaultSalesPeriod
	}
	q := url.Values{}
	setSKUs(q, skus)
	q.Set("period", period)
	return a.get(ctx, PathSalesTrends, q)
}

// GetStockInfo fetches ERP stock levels for skus.
func (a *API) GetStockInfo(ctx context.Context, skus SKUs) (json.RawMessage, error) {
	q := url.Values{}
	setSKUs(q, skus)
	return a.get(ctx, PathStock, q)
}

func (a *API) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	if a == nil || a.client == nil {
		return nil, fmt.Errorf("medipoint api is not initialized")
	}
	return a.client.Get(ctx, path, query)
}

func resourcePath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

// Decode unmarshals a payload returned by the catalog into T.
func Decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}
