package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
)

// OpenAIOptions configures the hosted model recognizer.
type OpenAIOptions struct {
	APIKey     string
	BaseURL    string
	Labels     []string
	MaxRetries int
	Logger     *zap.Logger
}

// OpenAI recognizes entities with a hosted chat completion model.
type OpenAI struct {
	client *openai.Client
	model  string
	labels []string
	logger *zap.Logger
}

type entityPayload struct {
	Entities []struct {
		Text  string `json:"text"`
		Label string `json:"label"`
	} `json:"entities"`
}

// NewOpenAI creates a recognizer for model. The label set defaults to the
// general labels.
func NewOpenAI(model string, opts OpenAIOptions) (*OpenAI, error) {
	if model == "" {
		return nil, fmt.Errorf("%w: openai model name required", internalerr.ErrModelUnavailable)
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api key required", internalerr.ErrModelUnavailable)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(opts.MaxRetries),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	client := openai.NewClient(reqOpts...)

	labels := opts.Labels
	if len(labels) == 0 {
		labels = GeneralLabels
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OpenAI{
		client: &client,
		model:  model,
		labels: append([]string(nil), labels...),
		logger: logger,
	}, nil
}

// Name returns the recognizer name.
func (o *OpenAI) Name() string {
	return OpenAIPrefix + o.model
}

// Recognize asks the model for entities and anchors each one in text.
// Entities whose text does not occur in the input, or whose label is not
// in the label set, are dropped.
func (o *OpenAI) Recognize(ctx context.Context, text string) ([]Span, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(o.systemPrompt()),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		o.logger.Warn("Entity recognition request failed", zap.String("model", o.model), zap.Error(err))
		return nil, fmt.Errorf("%w: openai: %v", internalerr.ErrRecognitionFailure, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai: no choices in response", internalerr.ErrRecognitionFailure)
	}

	var payload entityPayload
	if err := json.Unmarshal([]byte(stripFence(resp.Choices[0].Message.Content)), &payload); err != nil {
		return nil, fmt.Errorf("%w: openai: decode entities: %v", internalerr.ErrRecognitionFailure, err)
	}

	allowed := make(map[string]bool, len(o.labels))
	for _, l := range o.labels {
		allowed[l] = true
	}

	var spans []Span
	cursor := make(map[string]int) // entity text → next search offset
	for _, e := range payload.Entities {
		if !allowed[e.Label] || strings.TrimSpace(e.Text) == "" {
			continue
		}
		from := cursor[e.Text]
		idx := strings.Index(text[from:], e.Text)
		if idx < 0 && from > 0 {
			idx = strings.Index(text, e.Text)
			from = 0
		}
		if idx < 0 {
			o.logger.Debug("Dropping entity not found in text", zap.String("text", e.Text), zap.String("label", e.Label))
			continue
		}
		start := from + idx
		end := start + len(e.Text)
		cursor[e.Text] = end
		spans = append(spans, Span{Text: e.Text, Label: e.Label, Start: start, End: end})
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans, nil
}

func (o *OpenAI) systemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a named entity recognizer for resumes. ")
	b.WriteString("Label entities in the user text using only these labels: ")
	b.WriteString(strings.Join(o.labels, ", "))
	b.WriteString(". Copy each entity text exactly as it appears. ")
	b.WriteString(`Respond with valid JSON only: {"entities":[{"text":"...","label":"..."}]}`)
	return b.String()
}

// stripFence removes a markdown code fence around a JSON reply.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
