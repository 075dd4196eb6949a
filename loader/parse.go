package loader

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/qyinm/ballottui/types"
	"github.com/segmentio/encoding/json"
)

// ParseListing decodes the candidates feed, {"Candidates": [...], ...}.
// A missing or null Candidates field yields an empty list.
func ParseListing(r io.Reader) ([]types.Candidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var envelope struct {
		Candidates json.RawMessage `json:"Candidates"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return decodeRecords(envelope.Candidates)
}

// ParseResults decodes the results feed, which is the record collection itself.
func ParseResults(r io.Reader) ([]types.Candidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return decodeRecords(data)
}

// decodeRecords accepts a JSON array or a keyed object, the shape Firebase
// uses for pushed children. Object entries are returned in ascending key
// order so every decode of the same payload yields the same list.
func decodeRecords(data []byte) ([]types.Candidate, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []types.Candidate{}, nil
	}

	switch data[0] {
	case '[':
		var records []types.Candidate
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		if records == nil {
			records = []types.Candidate{}
		}
		return records, nil
	case '{':
		var keyed map[string]types.Candidate
		if err := json.Unmarshal(data, &keyed); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		records := make([]types.Candidate, 0, len(keys))
		for _, k := range keys {
			records = append(records, keyed[k])
		}
		return records, nil
	default:
		return nil, ErrUnexpectedShape
	}
}
