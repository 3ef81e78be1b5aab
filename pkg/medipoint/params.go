package medipoint

import (
	"net/url"
	"strconv"
	"strings"
)

// Topic category filters understood by the backend.
const (
	CategoryAll          = "all"
	CategoryHealth       = "health"
	CategoryMaternal     = "maternal"
	CategoryPrescription = "prescription"
)

// Suggestion priority filters.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Sales trend periods.
const (
	Period7d  = "7d"
	Period30d = "30d"
	Period90d = "90d"
)

const (
	defaultLabelFrequencyLimit = 5
	defaultSalesPeriod         = Period7d
	skuSeparator               = ","
)

// TopicParams filters the topic listing. Fields left at their zero value ("" or
// 0) are omitted from the query; set values are sent verbatim.
type TopicParams struct {
	Category string
	Limit    int
	Sort     string
}

func (p TopicParams) values() url.Values {
	q := url.Values{}
	setString(q, "category", p.Category)
	setInt(q, "limit", p.Limit)
	setString(q, "sort", p.Sort)
	return q
}

// SuggestionParams filters the suggestion listing. Empty fields are omitted.
type SuggestionParams struct {
	TopicID  string
	Priority string
}

func (p SuggestionParams) values() url.Values {
	q := url.Values{}
	setString(q, "topicId", p.TopicID)
	setString(q, "priority", p.Priority)
	return q
}

// SampleParams filters and pages the sample listing. Fields left at their zero
// value are omitted, so Offset 0 is the backend's own default rather than an
// explicit "offset=0".
type SampleParams struct {
	TopicID string
	Label   string
	Source  string
	Limit   int
	Offset  int
}

func (p SampleParams) values() url.Values {
	q := url.Values{}
	setString(q, "topicId", p.TopicID)
	setString(q, "label", p.Label)
	setString(q, "source", p.Source)
	setInt(q, "limit", p.Limit)
	setInt(q, "offset", p.Offset)
	return q
}

// SKUs is a SKU list sent as a single comma-joined query parameter.
type SKUs interface {
	Join() string
}

// SKUList is a sequence of SKU codes.
type SKUList []string

// Join joins the codes with a comma.
func (l SKUList) Join() string { return strings.Join(l, skuSeparator) }

// SKUString is a pre-joined SKU list such as "VIT-KID-100,DIAPER-M-360".
type SKUString string

// Join returns the list unchanged.
func (s SKUString) Join() string { return string(s) }

// ParseSKUs accepts either a comma-joined string or a slice of codes.
func ParseSKUs(v any) SKUs {
	switch t := v.(type) {
	case SKUs:
		return t
	case []string:
		return SKUList(t)
	case string:
		return SKUString(t)
	default:
		return nil
	}
}

// setSKUs adds the skus parameter unless no list was given at all. A nil
// SKUList counts as not given; an empty non-nil list is sent as "skus=".
func setSKUs(q url.Values, skus SKUs) {
	if skus == nil {
		return
	}
	if l, ok := skus.(SKUList); ok && l == nil {
		return
	}
	q.Set("skus", skus.Join())
}

func setString(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}

func setInt(q url.Values, key string, val int) {
	if val != 0 {
		q.Set(key, strconv.Itoa(val))
	}
}
