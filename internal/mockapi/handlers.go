package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/medipoint-hq/medipoint-gateway/internal/domain"
	"github.com/medipoint-hq/medipoint-gateway/internal/fixtures"
	"github.com/medipoint-hq/medipoint-gateway/pkg/medipoint"
)

// KPISummary is the landing page figure set derived from fixtures.
type KPISummary struct {
	TopicCount      int           `json:"topicCount"`
	RisingTopics    int           `json:"risingTopics"`
	SampleCount     int           `json:"sampleCount"`
	SuggestionCount int           `json:"suggestionCount"`
	AvgScore        float64       `json:"avgScore"`
	TopTopic        *domain.Topic `json:"topTopic,omitempty"`
}

type topicScore struct {
	ID    string `json:"id"`
	Topic string `json:"topic"`
	Score int    `json:"score"`
}

type labelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type sourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

type salesTrend struct {
	SKU      string  `json:"sku"`
	Period   string  `json:"period"`
	Days     int     `json:"days"`
	TotalQty int     `json:"totalQty"`
	DailyAvg float64 `json:"dailyAvg"`
}

type stockLevel struct {
	SKU         string   `json:"sku"`
	Title       string   `json:"title,omitempty"`
	Recommended int      `json:"recommended"`
	Alternates  []string `json:"alternates,omitempty"`
	Shelf       string   `json:"shelf,omitempty"`
}

var periodDays = map[string]int{
	medipoint.Period7d:  7,
	medipoint.Period30d: 30,
	medipoint.Period90d: 90,
}

// replenish labels in the fixtures are free text; map them onto priority filters.
var replenishPriority = map[string]string{
	"高優先": medipoint.PriorityHigh,
	"中高":  medipoint.PriorityMedium,
	"中":   medipoint.PriorityMedium,
}

func (s *Server) kpiSummary(w http.ResponseWriter, _ *http.Request) {
	out := KPISummary{
		TopicCount:      len(s.set.Topics),
		SampleCount:     len(s.set.Samples),
		SuggestionCount: len(s.set.Suggestions),
	}
	total := 0
	for i, t := range s.set.Topics {
		total += t.Score
		if t.Trend == domain.TrendUp {
			out.RisingTopics++
		}
		if out.TopTopic == nil || t.Score > out.TopTopic.Score {
			out.TopTopic = &s.set.Topics[i]
		}
	}
	if len(s.set.Topics) > 0 {
		out.AvgScore = float64(total) / float64(len(s.set.Topics))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listTopics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topics := s.set.FilterTopics(q.Get("category"))
	if q.Get("sort") == "score" {
		sort.SliceStable(topics, func(i, j int) bool { return topics[i].Score > topics[j].Score })
	}
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	writeJSON(w, http.StatusOK, page(topics, 0, limit))
}

func (s *Server) getTopic(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	t, ok := s.set.TopicByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "topic "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) listSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	suggestions := s.set.FilterSuggestions(q.Get("topicId"))
	if priority := q.Get("priority"); priority != "" {
		filtered := suggestions[:0]
		for _, sg := range suggestions {
			if priorityOf(sg) == priority {
				filtered = append(filtered, sg)
			}
		}
		suggestions = filtered
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (s *Server) getSuggestion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sg, ok := s.set.SuggestionBySKU(id)
	if !ok {
		writeError(w, http.StatusNotFound, "suggestion "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, sg)
}

func (s *Server) listSamples(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	samples := s.set.FilterSamples(fixtures.SampleFilter{
		TopicID: q.Get("topicId"),
		Label:   q.Get("label"),
		Source:  q.Get("source"),
	})
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	offset, err := intParam(q.Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}
	writeJSON(w, http.StatusOK, page(samples, offset, limit))
}

func (s *Server) getSample(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sm, ok := s.set.SampleByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "sample "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, sm)
}

func (s *Server) chartTopicScores(w http.ResponseWriter, _ *http.Request) {
	out := make([]topicScore, 0, len(s.set.Topics))
	for _, t := range s.set.Topics {
		out = append(out, topicScore{ID: t.ID, Topic: t.Topic, Score: t.Score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) chartSampleSources(w http.ResponseWriter, _ *http.Request) {
	counts := map[string]int{}
	for _, sm := range s.set.Samples {
		counts[sm.Source]++
	}
	out := make([]sourceCount, 0, len(counts))
	for src, n := range counts {
		out = append(out, sourceCount{Source: src, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Source < out[j].Source
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) chartLabelFrequency(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	counts := map[string]int{}
	for _, sm := range s.set.Samples {
		for _, l := range sm.Labels {
			counts[l]++
		}
	}
	out := make([]labelCount, 0, len(counts))
	for l, n := range counts {
		out = append(out, labelCount{Label: l, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	writeJSON(w, http.StatusOK, page(out, 0, limit))
}

func (s *Server) salesTrends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skus := splitSKUs(q.Get("skus"))
	if len(skus) == 0 {
		writeError(w, http.StatusBadRequest, "skus is required")
		return
	}
	period := q.Get("period")
	days, ok := periodDays[period]
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported period "+period)
		return
	}

	out := make([]salesTrend, 0, len(skus))
	for _, sku := range skus {
		trend := salesTrend{SKU: sku, Period: period, Days: days}
		if sg, ok := s.set.SuggestionBySKU(sku); ok {
			trend.TotalQty = sg.Qty * days / 7
			trend.DailyAvg = float64(trend.TotalQty) / float64(days)
		}
		out = append(out, trend)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) stock(w http.ResponseWriter, r *http.Request) {
	skus := splitSKUs(r.URL.Query().Get("skus"))
	if len(skus) == 0 {
		writeError(w, http.StatusBadRequest, "skus is required")
		return
	}

	out := make([]stockLevel, 0, len(skus))
	for _, sku := range skus {
		level := stockLevel{SKU: sku}
		if sg, ok := s.set.SuggestionBySKU(sku); ok {
			level.Title = sg.Title
			level.Recommended = sg.Qty
			level.Alternates = sg.Alt
			level.Shelf = sg.Shelf
		}
		out = append(out, level)
	}
	writeJSON(w, http.StatusOK, out)
}

func priorityOf(sg domain.Suggestion) string {
	if p, ok := replenishPriority[sg.Replenish]; ok {
		return p
	}
	return medipoint.PriorityLow
}

func splitSKUs(raw string) []string {
	var out []string
	for _, sku := range strings.Split(raw, ",") {
		if sku = strings.TrimSpace(sku); sku != "" {
			out = append(out, sku)
		}
	}
	return out
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

// page applies offset then limit; a zero limit means no limit.
func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
