package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type valueKind uint8

const (
	valueAbsent valueKind = iota
	valueText
	valueNumber
)

// MetricValue is a raw percentage as it was persisted: a string, a number, or
// nothing. The zero value is absent.
type MetricValue struct {
	raw  string
	kind valueKind
}

// Absent returns a value carrying no data.
func Absent() MetricValue {
	return MetricValue{}
}

// Text wraps a raw string value such as "12.3%" or "-".
func Text(raw string) MetricValue {
	return MetricValue{raw: raw, kind: valueText}
}

// Number wraps a numeric value.
func Number(f float64) MetricValue {
	return MetricValue{raw: strconv.FormatFloat(f, 'f', -1, 64), kind: valueNumber}
}

// IsAbsent reports whether the value carries no data at all.
func (v MetricValue) IsAbsent() bool { return v.kind == valueAbsent }

// IsNumber reports whether the value was persisted as a JSON number.
func (v MetricValue) IsNumber() bool { return v.kind == valueNumber }

// Raw returns the value's textual form; empty when absent.
func (v MetricValue) Raw() string { return v.raw }

func (v MetricValue) String() string { return v.raw }

// MarshalJSON writes numbers as JSON numbers, text as strings and absent as null.
func (v MetricValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case valueNumber:
		return []byte(v.raw), nil
	case valueText:
		return json.Marshal(v.raw)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, strings, numbers and, as text, any other scalar.
func (v *MetricValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = Absent()
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*v = MetricValue{raw: n.String(), kind: valueNumber}
			return nil
		}
		*v = Text(string(data))
	}
	return nil
}
