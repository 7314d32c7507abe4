// Package preview talks to a generateContent-style generative-AI API to
// produce prompt previews, tag suggestions, and quality scores.
package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vpetrenko/promptmart/internal/client/storage"
	"github.com/vpetrenko/promptmart/internal/common"
	"github.com/vpetrenko/promptmart/internal/logging"
)

var (
	// ErrNoAPIKey means preview generation was short-circuited before any
	// network call; the caller should prompt the user for a key.
	ErrNoAPIKey = errors.New("preview API key not configured")

	// ErrNoResponse means the model returned no usable candidate.
	ErrNoResponse = errors.New("no response generated")
)

// Part is the result of a preview: exactly one of Text or Image.
type Part interface {
	isPart()
}

// Text is a textual preview result.
type Text string

func (Text) isPart() {}

// Image is a generated image, decoded from the model's base64 payload.
type Image []byte

func (Image) isPart() {}

// Request describes one preview invocation.
type Request struct {
	Prompt  string
	Context string
}

// Quality is the model's assessment of a prompt.
type Quality struct {
	Rating   int
	Feedback string
}

// neutralQuality is returned whenever analysis fails; it is a deliberate
// fallback, not an error signal.
var neutralQuality = Quality{Rating: 3, Feedback: "Unable to analyze prompt quality"}

// Gateway is the generative-AI client. The API key may come from config at
// construction, from persisted state via LoadKey, or interactively via
// SetKey; the persisted key wins across restarts.
type Gateway struct {
	endpoint   string
	model      string
	httpClient *http.Client
	state      storage.Repository
	log        logging.Logger

	mu     sync.RWMutex
	apiKey string
}

func NewGateway(endpoint, model, initialKey string, timeout time.Duration, state storage.Repository, log logging.Logger) *Gateway {
	return &Gateway{
		endpoint: endpoint,
		model:    model,
		apiKey:   initialKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		state: state,
		log:   log,
	}
}

// LoadKey overlays the key persisted in client state, if any.
func (g *Gateway) LoadKey(ctx context.Context) {
	raw, err := g.state.Get(ctx, common.PreviewKeyStorageKey)
	if err != nil {
		g.log.Warn(ctx, "failed to read persisted preview key", "error", err)
		return
	}
	if len(raw) > 0 {
		g.mu.Lock()
		g.apiKey = string(raw)
		g.mu.Unlock()
	}
}

func (g *Gateway) HasKey() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.apiKey != ""
}

// SetKey installs and persists the API key.
func (g *Gateway) SetKey(ctx context.Context, key string) error {
	g.mu.Lock()
	g.apiKey = key
	g.mu.Unlock()
	if err := g.state.Set(ctx, common.PreviewKeyStorageKey, []byte(key)); err != nil {
		return fmt.Errorf("persisting preview key: %w", err)
	}
	return nil
}

func (g *Gateway) key() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.apiKey
}

type generationConfig struct {
	Temperature        float64  `json:"temperature"`
	TopK               int      `json:"topK,omitempty"`
	TopP               float64  `json:"topP,omitempty"`
	MaxOutputTokens    int      `json:"maxOutputTokens"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type responsePart struct {
	Text       string `json:"text"`
	InlineData *struct {
		MimeType string `json:"mimeType"`
		Data     string `json:"data"`
	} `json:"inlineData"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []responsePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate issues one generateContent call and returns the parts of the
// first candidate.
func (g *Gateway) generate(ctx context.Context, prompt string, cfg generationConfig) ([]responsePart, error) {
	var req generateRequest
	req.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	req.Contents[0].Parts = []struct {
		Text string `json:"text"`
	}{{Text: prompt}}
	req.GenerationConfig = cfg

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.endpoint, g.model, g.key())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("preview request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preview API error (status %d)", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(gr.Candidates) == 0 {
		return nil, ErrNoResponse
	}
	return gr.Candidates[0].Content.Parts, nil
}

// GeneratePreview runs the prompt through the model and returns exactly one
// Text or Image part. A missing key fails fast with ErrNoAPIKey.
func (g *Gateway) GeneratePreview(ctx context.Context, req Request) (Part, error) {
	if !g.HasKey() {
		return nil, ErrNoAPIKey
	}

	var sb strings.Builder
	sb.WriteString("You are an AI assistant. Respond ONLY with the direct result, with no preamble, explanation, or introduction. Here is the prompt to preview:\n\n")
	fmt.Fprintf(&sb, "%q\n\n", req.Prompt)
	if req.Context != "" {
		fmt.Fprintf(&sb, "Context: %s\n\n", req.Context)
	}
	sb.WriteString("Output only the result, as the user would expect to see it.")

	parts, err := g.generate(ctx, sb.String(), generationConfig{
		Temperature:        0.7,
		TopK:               40,
		TopP:               0.95,
		MaxOutputTokens:    1024,
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return nil, err
	}

	for _, part := range parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			img, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decoding image payload: %w", err)
			}
			return Image(img), nil
		}
		if part.Text != "" {
			return Text(part.Text), nil
		}
	}
	return nil, ErrNoResponse
}

// GenerateTags suggests discovery tags for the prompt content. It never
// fails: any problem, including a missing key, yields an empty list.
func (g *Gateway) GenerateTags(ctx context.Context, content string) []string {
	if !g.HasKey() {
		return nil
	}

	prompt := fmt.Sprintf(`Analyze this AI prompt and suggest 5-8 relevant tags that would help users discover it. Focus on the prompt's purpose, target use case, and AI model compatibility.

Prompt: %q

Return only a comma-separated list of tags, no other text.`, content)

	parts, err := g.generate(ctx, prompt, generationConfig{Temperature: 0.3, MaxOutputTokens: 200})
	if err != nil || len(parts) == 0 {
		g.log.Warn(ctx, "tag generation failed", "error", err)
		return nil
	}

	var tags []string
	for _, raw := range strings.Split(parts[0].Text, ",") {
		if tag := strings.TrimSpace(raw); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

var (
	ratingRe   = regexp.MustCompile(`Rating:\s*(\d)`)
	feedbackRe = regexp.MustCompile(`Feedback:\s*(.+)`)
)

// RateQuality asks the model to score the prompt 1..5 with feedback. Any
// failure, including a rating outside 1..5, keeps the neutral
// {3, "Unable to analyze prompt quality"} score; a
// missing key yields {0, "API key not configured"} so the caller can tell
// the difference.
func (g *Gateway) RateQuality(ctx context.Context, content string) Quality {
	if !g.HasKey() {
		return Quality{Rating: 0, Feedback: "API key not configured"}
	}

	prompt := fmt.Sprintf(`Analyze this AI prompt for quality and effectiveness. Rate it from 1-5 (5 being excellent) and provide brief constructive feedback.

Prompt: %q

Respond in this exact format:
Rating: [1-5]
Feedback: [Your brief feedback here]`, content)

	parts, err := g.generate(ctx, prompt, generationConfig{Temperature: 0.3, MaxOutputTokens: 300})
	if err != nil || len(parts) == 0 {
		g.log.Warn(ctx, "quality rating failed", "error", err)
		return neutralQuality
	}

	result := parts[0].Text
	q := neutralQuality
	if m := ratingRe.FindStringSubmatch(result); m != nil {
		if rating, err := strconv.Atoi(m[1]); err == nil && rating >= 1 && rating <= 5 {
			q.Rating = rating
		}
	}
	if m := feedbackRe.FindStringSubmatch(result); m != nil {
		q.Feedback = strings.TrimSpace(m[1])
	}
	return q
}
