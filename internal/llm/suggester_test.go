package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/chatlensapp/chatlens/internal/analyze"
)

func testConversation() *analyze.Conversation {
	return &analyze.Conversation{
		ID: "conv1",
		Messages: []analyze.Message{
			{Sender: "John", Content: "we need to talk about the deadline"},
			{Sender: "Sarah", Content: "I know, but I'm worried we'll miss it"},
		},
		Participants: []string{"John", "Sarah"},
		Tone: analyze.ToneAnalysis{
			OverallTone:           analyze.ToneTense,
			EmotionalIntensity:    6,
			KeyTopics:             []string{"deadline"},
			CommunicationPatterns: []string{"Contradictions present"},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	conv := testConversation()

	prompt := buildPrompt(conv, "gentle")

	for _, want := range []string{
		"John: we need to talk about the deadline",
		"Sarah: I know, but I'm worried we'll miss it",
		"tense",
		"intensity 6/10",
		"deadline",
		"Contradictions present",
		"gentle tone",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptAutoTone(t *testing.T) {
	prompt := buildPrompt(testConversation(), "auto")

	if strings.Contains(prompt, "auto tone") {
		t.Error("auto should not be forwarded as a literal tone")
	}
	if !strings.Contains(prompt, "Choose reply tones") {
		t.Error("auto mode should let the model pick tones")
	}
}

func TestBuildPromptTruncatesLongTranscripts(t *testing.T) {
	conv := testConversation()
	conv.Messages = []analyze.Message{
		{Sender: "John", Content: strings.Repeat("a", 2*maxTranscriptChars)},
	}

	prompt := buildPrompt(conv, "")

	if len(prompt) > maxTranscriptChars+2_000 {
		t.Errorf("prompt not truncated: %d chars", len(prompt))
	}
}

func TestDecodeModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantLen int
	}{
		{
			name:    "plain JSON",
			input:   `{"suggestions":[{"text":"ok","tone":"neutral"}]}`,
			wantLen: 1,
		},
		{
			name:    "JSON wrapped in prose",
			input:   "Here you go:\n{\"suggestions\":[{\"text\":\"ok\",\"tone\":\"neutral\"}]}\nHope that helps!",
			wantLen: 1,
		},
		{
			name:    "empty output",
			input:   "",
			wantErr: true,
		},
		{
			name:    "no JSON object",
			input:   "sorry, I cannot help with that",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set SuggestionSet
			err := decodeModelJSON(tt.input, &set)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(set.Suggestions) != tt.wantLen {
				t.Errorf("expected %d suggestions, got %d", tt.wantLen, len(set.Suggestions))
			}
		})
	}
}

func TestSuggestionSchemaIsStrict(t *testing.T) {
	schema := generateSchema[SuggestionSet]()

	if schema["additionalProperties"] != false {
		t.Error("schema should forbid additional properties")
	}

	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("schema has no properties")
	}
	if _, ok := props["suggestions"]; !ok {
		t.Error("schema missing suggestions property")
	}
}

func TestFallback(t *testing.T) {
	tones := []analyze.Tone{analyze.ToneFriendly, analyze.ToneNeutral, analyze.ToneTense, analyze.ToneHeated}

	for _, tone := range tones {
		t.Run(string(tone), func(t *testing.T) {
			set := Fallback(tone)

			if !set.Fallback {
				t.Error("fallback set should be marked as fallback")
			}
			if len(set.Suggestions) == 0 {
				t.Fatal("fallback must always offer suggestions")
			}
			for _, s := range set.Suggestions {
				if s.Text == "" || s.Tone == "" {
					t.Errorf("incomplete fallback suggestion: %+v", s)
				}
			}
		})
	}

	// Heated conversations get de-escalating replies, friendly ones do not
	heated := Fallback(analyze.ToneHeated)
	friendly := Fallback(analyze.ToneFriendly)
	if heated.Suggestions[0].Text == friendly.Suggestions[0].Text {
		t.Error("fallback suggestions should vary with tone")
	}
}

func TestSuggestValidation(t *testing.T) {
	s := NewSuggester("test-key", "test-model")

	if _, err := s.Suggest(context.Background(), nil, "auto"); err == nil {
		t.Error("expected error for nil conversation")
	}
	if _, err := s.Suggest(context.Background(), &analyze.Conversation{}, "auto"); err == nil {
		t.Error("expected error for empty conversation")
	}
}
