package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const verifyPrompt = `You are verifying photos submitted to a municipal civic issue reporting app.
Decide whether the image shows a genuine civic problem (pothole, garbage or trash, broken or dark street light, water leak or flooding, fire, or another public infrastructure issue).%s
Reply with JSON only: {"verified": boolean, "ai_confidence": number between 0 and 1, "explanation": short sentence naming the issue you see}.`

// Verifier defines the AI verification collaborator
type Verifier interface {
	Verify(ctx context.Context, image []byte, mimeType, category string) (*Result, error)
}

// GeminiVerifier classifies report photos with a Gemini model
type GeminiVerifier struct {
	client *genai.Client
	model  string
}

// NewGeminiVerifier creates a Gemini-backed verifier
func NewGeminiVerifier(ctx context.Context, apiKey, model string) (*GeminiVerifier, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiVerifier{client: client, model: model}, nil
}

// Verify sends the image with the claimed category and parses the JSON verdict
func (v *GeminiVerifier) Verify(ctx context.Context, image []byte, mimeType, category string) (*Result, error) {
	if len(image) == 0 {
		return nil, errors.New("image is required")
	}

	hint := ""
	if category != "" {
		hint = fmt.Sprintf(" The citizen says it shows: %s.", category)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(fmt.Sprintf(verifyPrompt, hint)),
		}, genai.RoleUser),
	}

	resp, err := v.client.Models.GenerateContent(ctx, v.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("GenAI verification failed: %w", err)
	}

	return ParseResult(resp.Text())
}

// ParseResult decodes a model reply, tolerating markdown code fences
func ParseResult(text string) (*Result, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty verification response")
	}

	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("invalid verification response: %w", err)
	}

	// Some models answer in percent
	if result.Confidence > 1 {
		result.Confidence /= 100
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	return &result, nil
}
