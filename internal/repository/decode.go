package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/yourusername/fund-report/internal/models"
)

// DefaultRecordsPath selects the record array of a {"funds": [...]} document.
const DefaultRecordsPath = "$.funds"

type selector func(ctx context.Context, doc interface{}) (interface{}, error)

// compileSelector compiles a JSONPath expression. An empty path or "$" selects
// the document root.
func compileSelector(path string) (selector, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "$" {
		return nil, nil
	}
	eval, err := jsonpath.New(path)
	if err != nil {
		return nil, fmt.Errorf("invalid records path %q: %w", path, err)
	}
	return selector(eval), nil
}

// decodeRecords parses a JSON document and decodes the record array that sel
// picks out of it. A path that matches nothing yields no records. Array items
// that are not objects are skipped.
func decodeRecords(ctx context.Context, data []byte, sel selector) ([]models.FundRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse records document: %w", err)
	}

	selected := doc
	if sel != nil {
		v, err := sel(ctx, doc)
		if err != nil {
			return []models.FundRecord{}, nil
		}
		selected = v
	}

	if selected == nil {
		return []models.FundRecord{}, nil
	}
	if _, ok := selected.([]interface{}); !ok {
		return nil, fmt.Errorf("records path selects %T, want an array", selected)
	}

	raw, err := json.Marshal(selected)
	if err != nil {
		return nil, fmt.Errorf("re-encode records: %w", err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("split records: %w", err)
	}

	records := make([]models.FundRecord, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		var r models.FundRecord
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}
