package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnconfigured is returned when no API key is available at call time.
var ErrUnconfigured = errors.New("GEMINI_API_KEY is not configured")

const (
	defaultModel   = "gemini-1.5-flash-latest"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// AnalysisPrompt is the fixed instruction sent with every label image.
const AnalysisPrompt = "Analyze this pet food label image and return strict JSON only. " +
	`Schema: {"ingredients": string[], "harmfulAdditives": string[], "healthRating": number (1-10), "summary": string, "confidenceScore": number (0-100), "toxicAlert": boolean}. ` +
	"Identify if any ingredient is strictly toxic for pets (e.g. xylitol, chocolate, onion). " +
	"The confidenceScore should reflect how readable the image is. " +
	"Use concise ingredient names and a practical summary."

// Client calls the Gemini generateContent REST endpoint. A single
// best-effort request per analysis; failures propagate to the caller.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// NewClient creates a Gemini client. The key may be empty; AnalyzeImage
// then fails with ErrUnconfigured.
func NewClient(apiKey string, logger *logrus.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeImage sends the image with the analysis prompt and returns the raw
// text of the first candidate. The text is untrusted; run it through
// ParseAnalysisResult.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnconfigured
	}

	payload, err := json.Marshal(generateContentRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: AnalysisPrompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.WithField("model", c.model).Debug("Sending generateContent request")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
