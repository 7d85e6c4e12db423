// Package insights carries the last computed result to the insights page.
// The transfer is a one-shot outbound form submission: storage alone cannot
// guarantee delivery into a freshly loaded page context, so the payload
// rides the navigation request itself.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"panchanga-desktop/internal/panchanga"
	"panchanga-desktop/internal/store"
)

// NewPayload merges a result with the original input timestamp and
// serializes it for storage and handoff. The serialized form is written
// verbatim to every storage channel and later posted verbatim to the
// insights page.
func NewPayload(res panchanga.Result, record panchanga.RequestRecord) ([]byte, error) {
	res.InputDatetime = strings.TrimSpace(record.Date + " " + record.Time)

	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize insight payload: %w", err)
	}
	return data, nil
}

// Transfer hands the last persisted payload off to the insights page
type Transfer struct {
	store  *store.Store
	client *panchanga.Client
}

// NewTransfer wires the handoff to its payload source and the service client
func NewTransfer(s *store.Store, c *panchanga.Client) *Transfer {
	return &Transfer{store: s, client: c}
}

// Open loads the last persisted payload and submits it to /insights as the
// single form field the page expects, returning the page document. Fails
// when no result has been persisted yet.
func (t *Transfer) Open(ctx context.Context) ([]byte, error) {
	payload, err := t.store.Load(store.Key)
	if err != nil {
		return nil, fmt.Errorf("no result available for insights: %w", err)
	}

	page, err := t.client.Insights(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("insights handoff failed: %w", err)
	}

	return page, nil
}
