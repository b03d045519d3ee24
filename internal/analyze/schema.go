package analyze

import "time"

// Sentiment is the per-message sentiment label
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Tone is the overall conversation tone bucket
type Tone string

const (
	ToneFriendly Tone = "friendly"
	ToneNeutral  Tone = "neutral"
	ToneTense    Tone = "tense"
	ToneHeated   Tone = "heated"
)

// UnknownSender is the placeholder sender for lines without a recognizable
// "Name:" prefix. It is excluded from the participants list.
const UnknownSender = "Unknown"

// Message represents a single attributed line of conversation text
type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Sentiment Sentiment `json:"sentiment"`
}

// ToneAnalysis summarizes the emotional shape of a whole conversation
type ToneAnalysis struct {
	OverallTone           Tone     `json:"overall_tone"`
	EmotionalIntensity    int      `json:"emotional_intensity"` // 1-10
	KeyTopics             []string `json:"key_topics"`
	CommunicationPatterns []string `json:"communication_patterns"`
}

// Result bundles everything derived from one piece of recognized text
type Result struct {
	Messages     []Message    `json:"messages"`
	Participants []string     `json:"participants"`
	Tone         ToneAnalysis `json:"tone"`
}

// Conversation is a stored analysis: the result plus its provenance.
// The analyzer produces it; persistence and ownership belong to the caller.
type Conversation struct {
	ID            string       `json:"id"`
	Timestamp     time.Time    `json:"timestamp"`
	Messages      []Message    `json:"messages"`
	Participants  []string     `json:"participants"`
	Tone          ToneAnalysis `json:"tone"`
	ExtractedText string       `json:"extracted_text"`
	ImageURI      string       `json:"image_uri,omitempty"`
}

const SchemaVersion = "1.0"
