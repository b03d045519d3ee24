package analyze

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Speaker attribution patterns, tried in order; the first match wins.
var (
	// "Name: message" with a letters-and-spaces name before the colon
	speakerPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z ]*):\s*(.*)$`)

	// Best-effort fallback: strip an embedded or trailing clock token so
	// free-form content survives. It does not recover a sender name.
	clockPattern = regexp.MustCompile(`^.*?(\d{1,2}:\d{2})\s*(.*)$`)
)

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// Text analyzes raw recognized text in raw segmentation mode: every
// non-blank line becomes a candidate message, no cleanup is applied.
// It is total over its input; empty or whitespace-only text yields an
// empty result with a neutral tone.
func Text(raw string) Result {
	messages := SegmentMessages(raw)
	return Result{
		Messages:     messages,
		Participants: ExtractParticipants(messages),
		Tone:         ClassifyTone(raw),
	}
}

// Structured analyzes raw recognized text in cleaned/structured mode: OCR
// artifacts are scrubbed, timestamp-only lines dropped, and continuation
// lines merged onto the preceding attributed message. Tone, topics, and
// pattern flags are still derived from the full raw text, so the two modes
// differ only in how messages are segmented.
func Structured(raw string) Result {
	messages := SegmentStructured(raw)
	return Result{
		Messages:     messages,
		Participants: ExtractParticipants(messages),
		Tone:         ClassifyTone(raw),
	}
}

// SegmentMessages splits raw text into attributed messages, one per
// non-blank line. Lines with a "Name:" prefix are credited to that name;
// everything else is credited to UnknownSender.
func SegmentMessages(raw string) []Message {
	var messages []Message

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sender, content := attributeLine(line)
		if content == "" {
			continue
		}

		messages = append(messages, newMessage(i, sender, content))
	}

	return messages
}

// attributeLine resolves a single line to (sender, content). The pattern
// list is ordered and the first match wins; a line that matches none keeps
// its full text under UnknownSender.
func attributeLine(line string) (string, string) {
	if m := speakerPattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := clockPattern.FindStringSubmatch(line); m != nil {
		// Timestamp stripped, but no name recovered
		return UnknownSender, strings.TrimSpace(m[2])
	}
	return UnknownSender, line
}

func newMessage(seq int, sender, content string) Message {
	return Message{
		ID:        fmt.Sprintf("msg_%d_%s", seq, uuid.NewString()[:8]),
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
		Sentiment: ClassifySentiment(content),
	}
}

// ExtractParticipants returns the unique senders in first-seen order,
// excluding UnknownSender.
func ExtractParticipants(messages []Message) []string {
	seen := make(map[string]bool)
	participants := []string{}

	for _, msg := range messages {
		if msg.Sender == UnknownSender || seen[msg.Sender] {
			continue
		}
		seen[msg.Sender] = true
		participants = append(participants, msg.Sender)
	}

	return participants
}

// ClassifySentiment labels one message by lexicon counting: more positive
// hits than negative is positive, more negative than positive is negative,
// ties (including zero hits) are neutral.
func ClassifySentiment(content string) Sentiment {
	lower := strings.ToLower(content)
	positive := countOccurrences(lower, positiveWords)
	negative := countOccurrences(lower, negativeWords)

	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ClassifyTone derives the overall tone, intensity, key topics, and
// communication-pattern flags for the full raw text.
func ClassifyTone(raw string) ToneAnalysis {
	lower := strings.ToLower(raw)
	positive := countOccurrences(lower, positiveWords)
	negative := countOccurrences(lower, negativeWords)
	tension := countOccurrences(lower, tensionWords)

	tone, intensity := bucketTone(positive, negative, tension)

	return ToneAnalysis{
		OverallTone:           tone,
		EmotionalIntensity:    intensity,
		KeyTopics:             ExtractKeyTopics(raw),
		CommunicationPatterns: DetectPatterns(raw),
	}
}

// bucketTone applies the fixed decision rules in priority order. The rules
// are non-exclusive and the first match wins, so both the ordering and the
// strict comparisons are load-bearing.
func bucketTone(positive, negative, tension int) (Tone, int) {
	switch {
	case negative > positive+2:
		return ToneHeated, 8
	case tension > 2 || negative > positive:
		return ToneTense, 6
	case positive > negative+1:
		return ToneFriendly, 3
	default:
		return ToneNeutral, 5
	}
}

// ExtractKeyTopics returns up to five lowercase content words ranked by
// frequency, ties broken by first occurrence. Tokens of length <= 3 are
// discarded before counting.
func ExtractKeyTopics(raw string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(raw), "")

	counts := make(map[string]int)
	var order []string
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 3 {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 5 {
		order = order[:5]
	}
	if order == nil {
		order = []string{}
	}
	return order
}

// DetectPatterns reports communication-pattern flags for the raw text, in
// a fixed check order, each at most once.
func DetectPatterns(raw string) []string {
	lower := strings.ToLower(raw)
	flags := []string{}

	for _, check := range patternChecks {
		for _, trigger := range check.triggers {
			if strings.Contains(lower, trigger) {
				flags = append(flags, check.flag)
				break
			}
		}
	}

	return flags
}

// NewConversation wraps an analysis result with identity and provenance
// for storage by the caller.
func NewConversation(raw, imageURI string, result Result) *Conversation {
	return &Conversation{
		ID:            uuid.NewString(),
		Timestamp:     time.Now(),
		Messages:      result.Messages,
		Participants:  result.Participants,
		Tone:          result.Tone,
		ExtractedText: raw,
		ImageURI:      imageURI,
	}
}
