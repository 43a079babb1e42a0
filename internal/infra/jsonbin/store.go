// Package jsonbin stores collections as top-level fields of one hosted JSON bin
// (api.jsonbin.io v3), the layout the tracker's earliest deployment used.
package jsonbin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

type Store struct {
	baseURL string
	binID   string
	apiKey  string
	client  *http.Client
}

func NewStore(baseURL, binID, apiKey string) *Store {
	return &Store{
		baseURL: baseURL,
		binID:   binID,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Get returns the field named key from the bin, or nil when the field is absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	bin, err := s.readBin(ctx)
	if err != nil {
		return nil, err
	}
	body, ok := bin[key]
	if !ok {
		return nil, nil
	}
	return body, nil
}

// Set rewrites the whole bin with key replaced. Other fields are carried over
// from a fresh read; a concurrent writer between the read and the write loses.
func (s *Store) Set(ctx context.Context, key string, body []byte) error {
	bin, err := s.readBin(ctx)
	if err != nil {
		return err
	}
	bin[key] = json.RawMessage(body)

	payload, err := json.Marshal(bin)
	if err != nil {
		return fmt.Errorf("error encoding bin: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.binURL(""), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("error building bin write request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Master-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error writing bin: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("error writing bin: unexpected status %s", resp.Status)
	}
	return nil
}

// readBin returns the bin's top-level fields. A body that is not a JSON object
// reads as an empty bin.
func (s *Store) readBin(ctx context.Context) (map[string]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.binURL("/latest"), nil)
	if err != nil {
		return nil, fmt.Errorf("error building bin read request: %w", err)
	}
	req.Header.Set("X-Master-Key", s.apiKey)
	req.Header.Set("X-Bin-Meta", "false")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error reading bin: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("error reading bin: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading bin body: %w", err)
	}

	bin := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &bin); err != nil || bin == nil {
		return make(map[string]json.RawMessage), nil
	}
	return bin, nil
}

func (s *Store) binURL(suffix string) string {
	return fmt.Sprintf("%s/v3/b/%s%s", s.baseURL, s.binID, suffix)
}
