package analyze

import (
	"regexp"
	"strings"
)

// OCR output is noisy: column separators leak through as pipes, spacing is
// erratic, and screenshot chrome (clock readouts, date stamps) shows up as
// standalone lines. The structured segmentation mode scrubs that noise and
// stitches wrapped bubbles back together before attribution.

var (
	// Runs of spaces and tabs; newlines are the line structure and survive
	spaceRunPattern = regexp.MustCompile(`[^\S\n]+`)

	// Whole lines that are only a timestamp: H:MM, M/D, or YYYY-MM-DD
	timestampLinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{1,2}:\d{2}(\s*[AaPp][Mm])?$`),
		regexp.MustCompile(`^\d{1,2}/\d{1,2}(/\d{2,4})?$`),
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	}
)

// CleanRecognizedText scrubs OCR artifacts from raw text: collapses runs
// of horizontal whitespace, strips pipe characters, trims each line, and
// drops lines too short to carry content.
func CleanRecognizedText(raw string) string {
	cleaned := spaceRunPattern.ReplaceAllString(raw, " ")
	cleaned = strings.ReplaceAll(cleaned, "|", "")

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 2 {
			continue
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// SegmentStructured is the cleaned/structured counterpart to
// SegmentMessages. After artifact cleanup it drops timestamp-only lines,
// then merges continuation lines (no "Name:" prefix) onto the preceding
// attributed message. Sentiment is assigned after merging so a wrapped
// bubble is scored as one message.
func SegmentStructured(raw string) []Message {
	type pending struct {
		sender  string
		content string
	}
	var parts []pending

	for _, line := range strings.Split(CleanRecognizedText(raw), "\n") {
		if isTimestampLine(line) {
			continue
		}

		if m := speakerPattern.FindStringSubmatch(line); m != nil {
			parts = append(parts, pending{
				sender:  strings.TrimSpace(m[1]),
				content: strings.TrimSpace(m[2]),
			})
			continue
		}

		// Continuation of the previous bubble, or an orphan line
		if len(parts) > 0 {
			last := &parts[len(parts)-1]
			if last.content == "" {
				last.content = line
			} else {
				last.content += " " + line
			}
			continue
		}
		parts = append(parts, pending{sender: UnknownSender, content: line})
	}

	var messages []Message
	for i, p := range parts {
		if p.content == "" {
			continue
		}
		messages = append(messages, newMessage(i, p.sender, p.content))
	}

	return messages
}

func isTimestampLine(line string) bool {
	for _, pattern := range timestampLinePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
