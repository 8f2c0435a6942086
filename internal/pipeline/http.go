package pipeline

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/url"
)

// maxResponseBytes caps how much of a response body is read. Generated text
// is short; anything larger is a misbehaving backend.
const maxResponseBytes = 4 << 20

type httpPipeline struct {
	model           string
	token           string
	base            *url.URL
	trustRemoteCode bool
	client          *http.Client
}

// chatRequest is the generation request body: a chat-style message list with
// one system text turn and one user image turn.
type chatRequest struct {
	Model           string        `json:"model"`
	Messages        []chatMessage `json:"messages"`
	TrustRemoteCode bool          `json:"trust_remote_code,omitempty"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content []chatChunk `json:"content"`
}

type chatChunk struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

func (p *httpPipeline) Model() string {
	return p.model
}

// Load asks the backend whether it can serve the model.
func (p *httpPipeline) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint("/v1/models/"+url.PathEscape(p.model)), nil)
	if err != nil {
		return err
	}
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("loading model %s: %w", p.model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("loading model %s: %s: %s", p.model, resp.Status, bytes.TrimSpace(body))
	}
	return nil
}

func (p *httpPipeline) Generate(ctx context.Context, systemText string, img image.Image) ([]byte, error) {
	dataURL, err := encodeImage(img)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model:           p.model,
		Messages:        buildMessages(systemText, dataURL),
		TrustRemoteCode: p.trustRemoteCode,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint("/v1/chat/completions"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation request failed: %s: %s", resp.Status, bytes.TrimSpace(raw))
	}
	return raw, nil
}

// buildMessages mirrors the canonical image-text-to-text input: the prompt
// as a system turn, the image as a user turn.
func buildMessages(systemText, imageURL string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: []chatChunk{{Type: "text", Text: systemText}}},
		{Role: "user", Content: []chatChunk{{Type: "image", Image: imageURL}}},
	}
}

// encodeImage renders the decoded pixel buffer as a PNG data URL so every
// backend receives one uniform transport format.
func encodeImage(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no decoded image data")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding image: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (p *httpPipeline) endpoint(path string) string {
	return p.base.JoinPath(path).String()
}

func (p *httpPipeline) authorize(req *http.Request) {
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
}
