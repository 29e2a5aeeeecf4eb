package topology

import (
	"github.com/tidwall/gjson"
)

// PatternSummary lists the event sources and detail types an event pattern matches on.
type PatternSummary struct {
	Sources     []string `json:"sources,omitempty"`
	DetailTypes []string `json:"detailTypes,omitempty"`
}

func summarizePattern(pattern string) PatternSummary {
	if !gjson.Valid(pattern) {
		return PatternSummary{}
	}
	return PatternSummary{
		Sources:     patternValues(gjson.Get(pattern, "source")),
		DetailTypes: patternValues(gjson.Get(pattern, "detail-type")),
	}
}

// patternValues flattens a pattern field. Content-filter objects such as {"prefix":"x"} are kept as raw JSON.
func patternValues(field gjson.Result) []string {
	if !field.Exists() {
		return nil
	}
	if !field.IsArray() {
		return []string{field.String()}
	}
	var values []string
	field.ForEach(func(_, value gjson.Result) bool {
		if value.IsObject() {
			values = append(values, value.Raw)
		} else {
			values = append(values, value.String())
		}
		return true
	})
	return values
}
