package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/senseilabs/sensei-bot/internal/config"
	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

// Provider is the raw upstream call. Implementations return the model output
// unvalidated; the service decides whether the shape is acceptable.
type Provider interface {
	GenerateAudit(ctx context.Context, system, user string) (*RawAudit, error)
}

type geminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) GenerateAudit(ctx context.Context, system, user string) (*RawAudit, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(
		ctx,
		geminiModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw := result.Text()
	if raw == "" {
		return nil, errors.New("empty response from model")
	}

	// Models occasionally fence the JSON even when asked not to.
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")

	var audit RawAudit
	if err := json.Unmarshal([]byte(clean), &audit); err != nil {
		log.WithError(err).Error("Failed to decode audit JSON from Gemini")
		return nil, fmt.Errorf("failed to decode audit JSON: %w", err)
	}

	log.Infof("Gemini audit returned %d questions", len(audit.QuizBank))
	return &audit, nil
}
