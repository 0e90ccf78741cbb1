package chart

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/prompts"
)

type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// LLMPredictor asks a chat model to act as the diet classifier.
type LLMPredictor struct {
	model  llms.Model
	prompt prompts.PromptTemplate
}

const classifierPrompt = `You are a diet classification model.
Classify the patient row below into exactly one label.

Labels: {{.Labels}}

{{range .Features}}{{.Name}}: {{.Value}}
{{end}}
Answer with the label only.`

func NewLLMPredictor(cfg LLMConfig) (*LLMPredictor, error) {
	opts := []openai.Option{openai.WithToken(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return NewLLMPredictorWithModel(llm), nil
}

// NewLLMPredictorWithModel wraps an existing model client.
func NewLLMPredictorWithModel(m llms.Model) *LLMPredictor {
	return &LLMPredictor{
		model:  m,
		prompt: prompts.NewPromptTemplate(classifierPrompt, []string{"Labels", "Features"}),
	}
}

func (l *LLMPredictor) Predict(ctx context.Context, p Profile) (Category, error) {
	labels := make([]string, 0, len(Labels))
	for _, c := range Labels {
		labels = append(labels, string(c))
	}
	prompt, err := l.prompt.Format(map[string]any{
		"Labels":   strings.Join(labels, ", "),
		"Features": p.Features(),
	})
	if err != nil {
		return "", &PredictionError{Reason: "build prompt", Err: err}
	}

	answer, err := llms.GenerateFromSinglePrompt(ctx, l.model, prompt, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return ParseLabel(answer)
}

// ParseLabel maps a free-text model answer onto the label vocabulary.
func ParseLabel(answer string) (Category, error) {
	cleaned := strings.Trim(strings.TrimSpace(answer), "`\"'. \n")
	cleaned = strings.ReplaceAll(cleaned, " ", "_")
	cleaned = strings.ReplaceAll(cleaned, "-", "_")
	for _, c := range Labels {
		if strings.EqualFold(cleaned, string(c)) {
			return c, nil
		}
	}
	return "", &PredictionError{Reason: fmt.Sprintf("unknown label %q", answer)}
}
