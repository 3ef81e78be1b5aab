package domain

// Domain contains the dashboard payload shapes served by the analytics backend.

// Trend is the direction a topic's discussion volume is moving.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendFlat Trend = "flat"
	TrendDown Trend = "down"
)

// Topic is a clustered public-discussion subject tracked by the backend.
type Topic struct {
	ID           string `json:"id" yaml:"id"`
	Topic        string `json:"topic" yaml:"topic"`
	Trend        Trend  `json:"trend" yaml:"trend"`
	Delta        string `json:"delta" yaml:"delta"`
	Category     string `json:"category" yaml:"category"`
	Score        int    `json:"score" yaml:"score"`
	SnippetCount int    `json:"snippetCount" yaml:"snippetCount"`
}

// Suggestion is a restocking recommendation tied to a Topic.
type Suggestion struct {
	TopicID   string   `json:"topicId" yaml:"topicId"`
	Title     string   `json:"title" yaml:"title"`
	SKU       string   `json:"sku" yaml:"sku"`
	Replenish string   `json:"replenish" yaml:"replenish"`
	Qty       int      `json:"qty" yaml:"qty"`
	Alt       []string `json:"alt" yaml:"alt"`
	Shelf     string   `json:"shelf" yaml:"shelf"`
	Talk      string   `json:"talk" yaml:"talk"`
}

// Sample is a single raw discussion snippet tied to a Topic.
type Sample struct {
	ID      string     `json:"id" yaml:"id"`
	TopicID string     `json:"topicId" yaml:"topicId"`
	Source  string     `json:"source" yaml:"source"`
	Text    string     `json:"text" yaml:"text"`
	Time    string     `json:"time" yaml:"time"`
	Labels  []string   `json:"labels" yaml:"labels"`
	Meta    SampleMeta `json:"meta" yaml:"meta"`
	URL     string     `json:"url" yaml:"url"`
}

type SampleMeta struct {
	Brand      string `json:"brand" yaml:"brand"`
	Ingredient string `json:"ingredient" yaml:"ingredient"`
	Symptom    string `json:"symptom" yaml:"symptom"`
}

// HasLabel reports whether the sample carries label.
func (s Sample) HasLabel(label string) bool {
	for _, l := range s.Labels {
		if l == label {
			return true
		}
	}
	return false
}
