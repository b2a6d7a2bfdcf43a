// Package ai provides an optional remote generation provider. The
// deterministic generator stays the default; a remote endpoint is only
// used when the config names one.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/felixgeelhaar/studio/pkg/domain/generate"
)

var safeModelName = regexp.MustCompile(`^[a-zA-Z0-9:._-]*$`)

// RemoteProvider calls an HTTP generation endpoint that speaks the seed
// and draft shapes directly. It preserves the insufficient-input
// contract: no anchors means no seeds, no logline means no draft, both
// decided locally without a network round trip.
type RemoteProvider struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewRemoteProvider creates a provider for the given endpoint.
func NewRemoteProvider(endpoint, model string) (*RemoteProvider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("remote provider requires an endpoint")
	}
	if !safeModelName.MatchString(model) {
		return nil, fmt.Errorf("invalid model name: %s", model)
	}
	return &RemoteProvider{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (p *RemoteProvider) ID() string {
	if p.model == "" {
		return "remote"
	}
	return "remote:" + p.model
}

type remoteRequest struct {
	Model string      `json:"model,omitempty"`
	Kind  string      `json:"kind"`
	Input interface{} `json:"input"`
}

// IdeaSeeds asks the endpoint for idea seeds.
func (p *RemoteProvider) IdeaSeeds(ctx context.Context, req generate.SeedRequest) ([]generate.Seed, error) {
	if len(req.Anchors) == 0 {
		return nil, nil
	}
	var seeds []generate.Seed
	if err := p.post(ctx, remoteRequest{Model: p.model, Kind: "seeds", Input: req}, &seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}

// BoardDraft asks the endpoint for a board version draft.
func (p *RemoteProvider) BoardDraft(ctx context.Context, req generate.DraftRequest) (*generate.Draft, error) {
	if req.Logline == "" || len(req.Anchors) == 0 {
		return nil, nil
	}
	var draft generate.Draft
	if err := p.post(ctx, remoteRequest{Model: p.model, Kind: "draft", Input: req}, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (p *RemoteProvider) post(ctx context.Context, payload remoteRequest, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	hReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	hReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(hReq)
	if err != nil {
		return fmt.Errorf("failed to reach generation endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("generation endpoint error: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode generation response: %w", err)
	}
	return nil
}
