package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/chatlensapp/chatlens/internal/analyze"
)

// Suggestion is one candidate reply
type Suggestion struct {
	Text string `json:"text" jsonschema_description:"The reply text, ready to send"`
	Tone string `json:"tone" jsonschema_description:"Tone of this reply, e.g. gentle, direct, playful"`
}

// SuggestionSet is the structured response for one suggestion request
type SuggestionSet struct {
	Suggestions []Suggestion `json:"suggestions" jsonschema_description:"Three to five candidate replies"`
	Fallback    bool         `json:"-"`
}

var suggestionSchema = generateSchema[SuggestionSet]()

// Suggester asks an LLM for reply suggestions for an analyzed conversation
type Suggester struct {
	client *openai.Client
	model  string
}

// NewSuggester creates a Suggester using the given API key and model
func NewSuggester(apiKey, model string) *Suggester {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Suggester{
		client: &client,
		model:  model,
	}
}

// Suggest requests reply suggestions for the conversation. tonePref is
// "auto" or empty to let the model pick, otherwise a tone the replies
// should carry. Callers are expected to fall back to Fallback() when this
// fails; network, rate-limit, and malformed-response failures all surface
// here as errors.
func (s *Suggester) Suggest(ctx context.Context, conv *analyze.Conversation, tonePref string) (*SuggestionSet, error) {
	if s.client == nil {
		return nil, errors.New("suggester: client is nil")
	}
	if s.model == "" {
		return nil, errors.New("suggester: model is empty")
	}
	if conv == nil || len(conv.Messages) == 0 {
		return nil, errors.New("suggester: conversation has no messages")
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "ReplySuggestions",
			Schema:      suggestionSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Candidate replies JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           s.model,
		MaxOutputTokens: openai.Int(800),
		Instructions:    openai.String(suggesterPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(buildPrompt(conv, tonePref), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := callWithRetry(ctx, s.client, params)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}

	var out SuggestionSet
	if err := decodeModelJSON(resp.OutputText(), &out); err != nil {
		return nil, fmt.Errorf("unmarshal suggestions: %w", err)
	}
	for i := range out.Suggestions {
		out.Suggestions[i].Text = strings.TrimSpace(out.Suggestions[i].Text)
	}
	return &out, nil
}

// Fallback returns canned suggestions matched to the analyzed tone, for
// when the live call fails or its response cannot be parsed.
func Fallback(tone analyze.Tone) *SuggestionSet {
	var suggestions []Suggestion

	switch tone {
	case analyze.ToneHeated, analyze.ToneTense:
		suggestions = []Suggestion{
			{Text: "I can see this matters a lot to you. Can we take a step back and talk it through?", Tone: "gentle"},
			{Text: "I hear you. Let me think about what you said before I respond properly.", Tone: "gentle"},
			{Text: "I don't want this to turn into a fight. What would help right now?", Tone: "direct"},
		}
	case analyze.ToneFriendly:
		suggestions = []Suggestion{
			{Text: "That sounds great! Tell me more.", Tone: "playful"},
			{Text: "Thanks for sharing that, it made my day.", Tone: "warm"},
			{Text: "Love it. When do we start?", Tone: "playful"},
		}
	default:
		suggestions = []Suggestion{
			{Text: "Thanks for letting me know. What do you think we should do next?", Tone: "neutral"},
			{Text: "Got it. Want to talk about it later today?", Tone: "neutral"},
			{Text: "That makes sense. I appreciate you explaining.", Tone: "warm"},
		}
	}

	return &SuggestionSet{Suggestions: suggestions, Fallback: true}
}
