package forecast

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

const generatePath = "/v1beta/models/gemini-2.0-flash:generateContent"

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GeminiPredictor calls the Gemini text-generation API. An empty apiKey
// disables the live path entirely.
type GeminiPredictor struct {
	client *resty.Client
	apiKey string
	logger internal.Logger
}

func NewGeminiPredictor(baseURL, apiKey string, logger internal.Logger) *GeminiPredictor {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &GeminiPredictor{client: client, apiKey: apiKey, logger: logger}
}

// Predict never returns an error: any failure along the live path degrades to
// a fixed fallback prediction.
func (p *GeminiPredictor) Predict(ctx context.Context, child *internal.Child, history []internal.SleepSession) internal.Prediction {
	now := time.Now().UTC()

	if p.apiKey == "" {
		p.logger.Warnf("Gemini API key not configured, returning mock prediction")
		return UnconfiguredPrediction(now)
	}

	prompt := buildPrompt(child, history, now)

	var out generateResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("key", p.apiKey).
		SetBody(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}).
		SetResult(&out).
		Post(generatePath)
	if err != nil {
		p.logger.Errorf("Gemini API error: %v", err)
		return FallbackPrediction(now, ReasonAPIError)
	}
	if resp.IsError() {
		p.logger.Errorf("Gemini API returned %d: %s", resp.StatusCode(), resp.String())
		return FallbackPrediction(now, ReasonAPIError)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		p.logger.Errorf("Gemini response has no candidates")
		return FallbackPrediction(now, ReasonAPIError)
	}

	text := out.Candidates[0].Content.Parts[0].Text
	pred, err := ParsePrediction(text)
	if err != nil {
		p.logger.Errorf("Failed to parse Gemini response: %v; text: %s", err, text)
		return FallbackPrediction(now, ReasonParseError)
	}
	return pred
}

var _ Predictor = (*GeminiPredictor)(nil)
