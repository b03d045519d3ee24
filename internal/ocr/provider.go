package ocr

import (
	"context"
	"strings"
)

// Block is one recognized region of text with its recognition confidence
type Block struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Result is the output of one recognition call
type Result struct {
	Blocks []Block `json:"blocks"`
}

// Provider recognizes text in an image. Implementations wrap an external
// recognition service; errors are transport or service failures, never
// "no text found" (that is an empty Result).
type Provider interface {
	Recognize(ctx context.Context, imageRef string) (*Result, error)
}

// Text joins the recognized blocks into one raw text, one block per line
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	lines := make([]string, 0, len(r.Blocks))
	for _, b := range r.Blocks {
		lines = append(lines, b.Text)
	}
	return strings.Join(lines, "\n")
}

// MeanConfidence aggregates block confidences into a single score clamped
// to [0,1]. No blocks means zero confidence.
func (r *Result) MeanConfidence() float64 {
	if r == nil || len(r.Blocks) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range r.Blocks {
		sum += b.Confidence
	}
	mean := sum / float64(len(r.Blocks))
	if mean < 0 {
		return 0
	}
	if mean > 1 {
		return 1
	}
	return mean
}
