package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Page is the uniform search endpoint response.
type Page[T any] struct {
	Data        []T  `json:"data"`
	TotalCount  int  `json:"totalCount"`
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

type rawPage struct {
	Data        json.RawMessage `json:"data"`
	TotalCount  int             `json:"totalCount"`
	Page        int             `json:"page"`
	PageSize    int             `json:"pageSize"`
	HasNext     bool            `json:"hasNext"`
	HasPrevious bool            `json:"hasPrevious"`
}

// Search calls GET /{resource}/search. Params use wire names (Search,
// SortBy, IsDescending, Page, PageSize, plus entity filters); Page is
// 1-indexed.
func Search[T any](ctx context.Context, c *Client, resource string, params url.Values) (*Page[T], error) {
	data, err := c.get(ctx, buildQuery(resourcePath(resource, "search"), params))
	if err != nil {
		return nil, err
	}
	return decodePage[T](data)
}

func decodePage[T any](data []byte) (*Page[T], error) {
	var raw rawPage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	trimmed := bytes.TrimSpace(raw.Data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("search response: %w: data is not an array", ErrMalformed)
	}
	var rows []T
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	if raw.TotalCount < len(rows) {
		raw.TotalCount = len(rows)
	}
	return &Page[T]{
		Data:        rows,
		TotalCount:  raw.TotalCount,
		Page:        raw.Page,
		PageSize:    raw.PageSize,
		HasNext:     raw.HasNext,
		HasPrevious: raw.HasPrevious,
	}, nil
}
