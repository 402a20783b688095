package audit

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/senseilabs/sensei-bot/internal/config"
)

type openaiProvider struct {
	client *openai.Client
}

// NewOpenAIProvider returns a Provider backed by the OpenAI chat API. The
// audit shape is forced through a function tool so the response is always
// machine-readable JSON.
func NewOpenAIProvider(apiKey string) Provider {
	return &openaiProvider{client: openai.NewClient(apiKey)}
}

func (p *openaiProvider) GenerateAudit(ctx context.Context, system, user string) (*RawAudit, error) {
	log := config.WithContext(ctx)

	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "submit_audit",
						Description: "Submit the academic audit of the provided text",
						Parameters:  auditToolSchema(),
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type:     openai.ToolTypeFunction,
				Function: openai.ToolFunction{Name: "submit_audit"},
			},
		},
	)
	if err != nil {
		log.WithError(err).Error("OpenAI content generation failed")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool calls in response")
	}

	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != "submit_audit" {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	var audit RawAudit
	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &audit); err != nil {
		log.WithError(err).Error("Failed to decode audit JSON from OpenAI tool call")
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	log.Infof("OpenAI audit returned %d questions", len(audit.QuizBank))
	return &audit, nil
}

func auditToolSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"title": map[string]interface{}{
				"type":        "string",
				"description": "Concise title of the material",
			},
			"educational_answer": map[string]interface{}{
				"type":        "string",
				"description": "Direct answer for a question, or a summary for notes",
			},
			"core_concepts": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Exactly 5 critical technical or academic terms",
			},
			"quiz_bank": map[string]interface{}{
				"type":        "array",
				"description": "Exactly 20 multiple choice questions",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"question_text": map[string]interface{}{
							"type":        "string",
							"description": "The full question text",
						},
						"options": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Exactly 4 plausible options",
						},
						"correct_answer": map[string]interface{}{
							"type":        "string",
							"description": "Text of the correct option, matching one option exactly",
						},
					},
					"required": []string{"question_text", "options", "correct_answer"},
				},
			},
		},
		"required": []string{"title", "educational_answer", "core_concepts", "quiz_bank"},
	}
}
