// Package pipeline wraps an external inference service behind a small
// loadable abstraction: one pipeline per model, turning a (system prompt,
// image) pair into raw generated output. The raw response body is returned
// unparsed; providers disagree on result shapes and normalization happens
// downstream.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"time"
)

// ErrNoEndpoint means no inference endpoint is configured at all. Nothing
// can run without one, so callers treat it as a fatal startup failure
// rather than a per-model load failure.
var ErrNoEndpoint = errors.New("no inference endpoint configured")

// Pipeline loads one model on an inference backend and generates responses
// for multimodal input.
type Pipeline interface {
	// Model returns the model identifier this pipeline serves.
	Model() string

	// Load verifies the backend can serve the model. A Load failure is
	// per-model: the run continues and records placeholders.
	Load(ctx context.Context) error

	// Generate sends one system prompt plus one image and returns the raw
	// response body.
	Generate(ctx context.Context, systemText string, img image.Image) ([]byte, error)
}

// Options configure pipeline construction.
type Options struct {
	Model           string
	Token           string
	Endpoint        string
	TrustRemoteCode bool

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

const defaultRequestTimeout = 120 * time.Second

// New constructs the HTTP-backed pipeline for one model. Construction only
// validates configuration; the network is first touched by Load.
func New(opts Options) (Pipeline, error) {
	if opts.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	base, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid inference endpoint %q: %w", opts.Endpoint, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid inference endpoint %q: unsupported scheme %q", opts.Endpoint, base.Scheme)
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}

	return &httpPipeline{
		model:           opts.Model,
		token:           opts.Token,
		base:            base,
		trustRemoteCode: opts.TrustRemoteCode,
		client:          client,
	}, nil
}
