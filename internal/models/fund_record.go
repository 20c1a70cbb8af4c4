package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FundRecord is one fund's performance row. Records are identified by their
// position in the source and are never mutated once loaded.
type FundRecord struct {
	Manager     string      `json:"manager"`
	ProductName string      `json:"product_name"`
	StartDate   string      `json:"start_date"`
	Strategy    string      `json:"strategy,omitempty"`
	RecentWeek  MetricValue `json:"recent_week"`
	MTD         MetricValue `json:"mtd"`
	YTD         MetricValue `json:"ytd"`
	Y2024       MetricValue `json:"y2024"`
	Y2023       MetricValue `json:"y2023"`
	Y2022       MetricValue `json:"y2022"`
	Y2021       MetricValue `json:"y2021"`
	Y2020       MetricValue `json:"y2020"`
	Y2019       MetricValue `json:"y2019"`
	MaxDrawdown MetricValue `json:"max_drawdown"`
	Other       MetricValue `json:"other"`
}

type fundRecordAlias FundRecord

// UnmarshalJSON tolerates non-string scalars in the text fields so that a
// single odd record never fails a whole load.
func (r *FundRecord) UnmarshalJSON(data []byte) error {
	aux := struct {
		*fundRecordAlias
		Manager     looseText `json:"manager"`
		ProductName looseText `json:"product_name"`
		StartDate   looseText `json:"start_date"`
		Strategy    looseText `json:"strategy"`
	}{fundRecordAlias: (*fundRecordAlias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decode fund record: %w", err)
	}
	r.Manager = string(aux.Manager)
	r.ProductName = string(aux.ProductName)
	r.StartDate = string(aux.StartDate)
	r.Strategy = string(aux.Strategy)
	return nil
}

// looseText decodes strings as-is, null as "" and any other scalar as its JSON text.
type looseText string

func (t *looseText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = looseText(s)
		return nil
	}
	*t = looseText(data)
	return nil
}

// Text returns the textual form of the named field. Metric fields return their
// raw text, or "" when absent.
func (r FundRecord) Text(f Field) string {
	switch f {
	case FieldManager:
		return r.Manager
	case FieldProductName:
		return r.ProductName
	case FieldStartDate:
		return r.StartDate
	case FieldStrategy:
		return r.Strategy
	}
	return r.Metric(f).Raw()
}

// Metric returns the named field as a MetricValue. Text fields are wrapped as
// text, or absent when empty.
func (r FundRecord) Metric(f Field) MetricValue {
	switch f {
	case FieldRecentWeek:
		return r.RecentWeek
	case FieldMTD:
		return r.MTD
	case FieldYTD:
		return r.YTD
	case FieldY2024:
		return r.Y2024
	case FieldY2023:
		return r.Y2023
	case FieldY2022:
		return r.Y2022
	case FieldY2021:
		return r.Y2021
	case FieldY2020:
		return r.Y2020
	case FieldY2019:
		return r.Y2019
	case FieldMaxDrawdown:
		return r.MaxDrawdown
	case FieldOther:
		return r.Other
	}
	if f.IsText() {
		if s := r.Text(f); s != "" {
			return Text(s)
		}
	}
	return Absent()
}
