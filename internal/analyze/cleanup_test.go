package analyze

import (
	"strings"
	"testing"
)

func TestCleanRecognizedText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "collapses runs of spaces and tabs",
			raw:  "John:   hello\t\tthere",
			want: "John: hello there",
		},
		{
			name: "strips pipe characters",
			raw:  "John: hello |there",
			want: "John: hello there",
		},
		{
			name: "drops short lines",
			raw:  "John: hello\nok\nx\nSarah: hi there",
			want: "John: hello\nSarah: hi there",
		},
		{
			name: "trims each line",
			raw:  "  John: hello  \n  Sarah: hi  ",
			want: "John: hello\nSarah: hi",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanRecognizedText(tt.raw); got != tt.want {
				t.Errorf("CleanRecognizedText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSegmentStructured(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantSenders  []string
		wantContents []string
	}{
		{
			name:         "continuation line merged onto previous message",
			raw:          "John: this message wrapped\nonto a second line\nSarah: short reply",
			wantSenders:  []string{"John", "Sarah"},
			wantContents: []string{"this message wrapped onto a second line", "short reply"},
		},
		{
			name:         "timestamp lines dropped",
			raw:          "John: see you then\n3:45\nSarah: sounds good\n2026-08-30",
			wantSenders:  []string{"John", "Sarah"},
			wantContents: []string{"see you then", "sounds good"},
		},
		{
			name:         "slash date dropped",
			raw:          "8/30\nJohn: morning",
			wantSenders:  []string{"John"},
			wantContents: []string{"morning"},
		},
		{
			name:         "orphan leading line kept as unknown",
			raw:          "some preamble text\nJohn: actual message",
			wantSenders:  []string{UnknownSender, "John"},
			wantContents: []string{"some preamble text", "actual message"},
		},
		{
			name:         "embedded clock inside prose is not dropped",
			raw:          "Note: remember the time 3:45 tomorrow",
			wantSenders:  []string{"Note"},
			wantContents: []string{"remember the time 3:45 tomorrow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentStructured(tt.raw)

			if len(got) != len(tt.wantSenders) {
				t.Fatalf("expected %d messages, got %d: %+v", len(tt.wantSenders), len(got), got)
			}
			for i := range tt.wantSenders {
				if got[i].Sender != tt.wantSenders[i] {
					t.Errorf("message %d: expected sender %q, got %q", i, tt.wantSenders[i], got[i].Sender)
				}
				if got[i].Content != tt.wantContents[i] {
					t.Errorf("message %d: expected content %q, got %q", i, tt.wantContents[i], got[i].Content)
				}
			}
		})
	}
}

func TestRawAndStructuredModesDiverge(t *testing.T) {
	// A wrapped message plus screenshot chrome: raw mode keeps the
	// continuation as its own Unknown message and drops the bare clock
	// line (nothing left after the strip); structured mode stitches the
	// wrap back onto John's message.
	raw := "John: the plan changed\nwe meet an hour earlier now\n3:45\nSarah: works for me"

	rawMode := Text(raw)
	structured := Structured(raw)

	if len(rawMode.Messages) != 3 {
		t.Errorf("raw mode: expected 3 messages, got %d", len(rawMode.Messages))
	}
	if len(structured.Messages) != 2 {
		t.Errorf("structured mode: expected 2 messages, got %d", len(structured.Messages))
	}

	if !strings.Contains(structured.Messages[0].Content, "an hour earlier") {
		t.Errorf("structured mode should merge the continuation line, got %q", structured.Messages[0].Content)
	}

	// Tone comes from the full raw text in both modes
	if rawMode.Tone.OverallTone != structured.Tone.OverallTone {
		t.Errorf("tone differs between modes: %q vs %q", rawMode.Tone.OverallTone, structured.Tone.OverallTone)
	}
}
