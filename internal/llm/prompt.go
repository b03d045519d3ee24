package llm

import (
	"fmt"
	"strings"

	"github.com/chatlensapp/chatlens/internal/analyze"
)

const suggesterPrompt = `You are a communication coach helping someone reply to a conversation.

You will receive a conversation transcript with a heuristic tone analysis. Suggest replies the user could send next. Each suggestion should fit the requested tone, stay grounded in what was actually said, and be short enough to send as a single chat message.

Respond with JSON only.`

// maxTranscriptChars bounds the transcript portion of the prompt so a very
// long extraction cannot blow the context window
const maxTranscriptChars = 12_000

// buildPrompt renders the conversation and its tone analysis as the user
// message for a suggestion request.
func buildPrompt(conv *analyze.Conversation, tonePref string) string {
	var b strings.Builder

	b.WriteString("Conversation transcript:\n")
	transcript := renderTranscript(conv.Messages)
	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars]
	}
	b.WriteString(transcript)

	b.WriteString("\n\nTone analysis:\n")
	fmt.Fprintf(&b, "- overall tone: %s (intensity %d/10)\n",
		conv.Tone.OverallTone, conv.Tone.EmotionalIntensity)
	if len(conv.Tone.KeyTopics) > 0 {
		fmt.Fprintf(&b, "- key topics: %s\n", strings.Join(conv.Tone.KeyTopics, ", "))
	}
	for _, pattern := range conv.Tone.CommunicationPatterns {
		fmt.Fprintf(&b, "- pattern: %s\n", pattern)
	}

	if tonePref != "" && tonePref != "auto" {
		fmt.Fprintf(&b, "\nThe user wants replies with a %s tone.\n", tonePref)
	} else {
		b.WriteString("\nChoose reply tones appropriate to the conversation.\n")
	}

	return b.String()
}

func renderTranscript(messages []analyze.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Sender, msg.Content))
	}
	return strings.Join(lines, "\n")
}
