package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// No timeout exists in the upstream contract; 8s keeps a hung model
// call from pinning a request forever.
const geminiTimeout = 8 * time.Second

// GeminiClient calls the Gemini generateContent REST endpoint. It
// satisfies AdvisoryClient: every failure degrades to the fixed
// fallback value and is never surfaced to the caller. No retries.
type GeminiClient struct {
	http  *resty.Client
	model string
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	client := resty.New().
		SetBaseURL(geminiBaseURL).
		SetTimeout(geminiTimeout).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", apiKey)
	return &GeminiClient{http: client, model: model}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClient) Analyze(ctx context.Context, title, description string) Advisory {
	prompt := fmt.Sprintf(`Analyze this municipal issue and provide a summary including urgency (Low, Medium, High), recommended first steps for a councillor, and a possible root cause.

Title: %s
Description: %s`, title, description)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		log.Println("Gemini analysis error:", err)
		return Advisory{Text: AnalysisFallback, Fallback: true}
	}
	return Advisory{Text: text}
}

func (g *GeminiClient) SuggestCategory(ctx context.Context, description string) Advisory {
	prompt := fmt.Sprintf(`Categorize the following issue description into one of these categories: Roads & Potholes, Street Lighting, Waste & Sanitation, Water Supply, Parks & Recreation, Other. Return ONLY the category name.

Issue: %s`, description)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return Advisory{Text: CategoryFallback, Fallback: true}
	}
	return Advisory{Text: strings.TrimSpace(text)}
}

func (g *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	var out geminiResponse
	resp, err := g.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", g.model))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini returned %s", resp.Status())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}
