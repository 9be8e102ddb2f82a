package store

import (
	"strconv"
	"time"
)

// Date layouts the API has been observed to emit.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// parseDate turns an API date value into a timestamp. Absent or unparsable
// dates yield nil, never an error.
func parseDate(value any) *time.Time {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// externalProductID extracts the EPREL product id, which arrives as either
// productId or id and as either a string or a number.
func externalProductID(payload map[string]any) string {
	return stringField(payload, "productId", "id")
}

// stringField returns the first present key rendered as a string, or "".
func stringField(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := scalarString(payload[key]); s != "" {
			return s
		}
	}
	return ""
}

// optStringField is stringField for nullable columns.
func optStringField(payload map[string]any, keys ...string) *string {
	if s := stringField(payload, keys...); s != "" {
		return &s
	}
	return nil
}

// optFloatField extracts a numeric field, tolerating string-encoded numbers.
func optFloatField(payload map[string]any, key string) *float64 {
	switch v := payload[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func scalarString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	}
	return ""
}
