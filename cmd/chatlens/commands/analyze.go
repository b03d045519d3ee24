package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatlensapp/chatlens/internal/analyze"
	"github.com/chatlensapp/chatlens/internal/config"
	"github.com/chatlensapp/chatlens/internal/ocr"
	"github.com/chatlensapp/chatlens/internal/store"
)

var analyzeFlags struct {
	image      string
	textFile   string
	stdin      bool
	structured bool
	save       bool
	title      string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze conversation text from an image, file, or stdin",
	Long: `Analyze runs the conversation analyzer on recognized text.

Input comes from exactly one source:
  --image      run text recognition on a screenshot via the configured OCR endpoint
  --text-file  read already-recognized text from a file
  --stdin      read already-recognized text from standard input

By default every non-blank line is treated as a message (raw mode).
--structured enables the cleaned mode: OCR artifacts are scrubbed,
timestamp-only lines dropped, and wrapped lines merged onto the previous
speaker's message.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlags.image, "image", "", "Path to a screenshot to run text recognition on")
	analyzeCmd.Flags().StringVar(&analyzeFlags.textFile, "text-file", "", "Path to a file with recognized text")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.stdin, "stdin", false, "Read recognized text from stdin")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.structured, "structured", false, "Use the cleaned/structured segmentation mode")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.save, "save", false, "Save the analysis to local history")
	analyzeCmd.Flags().StringVar(&analyzeFlags.title, "title", "", "Title for the saved conversation")

	rootCmd.AddCommand(analyzeCmd)
}

// analyzeOutput is what the analyze command prints
type analyzeOutput struct {
	analyze.Result
	ConversationID string  `json:"conversation_id,omitempty"`
	OCRConfidence  float64 `json:"ocr_confidence,omitempty"`
	Saved          bool    `json:"saved"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	raw, confidence, imageURI, err := resolveInput(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var result analyze.Result
	if analyzeFlags.structured {
		result = analyze.Structured(raw)
	} else {
		result = analyze.Text(raw)
	}

	out := analyzeOutput{
		Result:        result,
		OCRConfidence: confidence,
	}

	if analyzeFlags.save {
		conv := analyze.NewConversation(raw, imageURI, result)

		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SaveConversation(conv, analyzeFlags.title); err != nil {
			return err
		}
		out.ConversationID = conv.ID
		out.Saved = true
	}

	return OutputJSON(out)
}

// resolveInput returns (raw text, ocr confidence, image uri). Confidence
// is only meaningful for the --image path.
func resolveInput(ctx context.Context, cfg *config.Config) (string, float64, string, error) {
	sources := 0
	if analyzeFlags.image != "" {
		sources++
	}
	if analyzeFlags.textFile != "" {
		sources++
	}
	if analyzeFlags.stdin {
		sources++
	}
	if sources != 1 {
		return "", 0, "", fmt.Errorf("exactly one of --image, --text-file, or --stdin is required")
	}

	switch {
	case analyzeFlags.image != "":
		provider := ocr.NewClient(cfg.OCREndpoint(), cfg.OCRAPIKey())
		recognized, err := provider.Recognize(ctx, analyzeFlags.image)
		if err != nil {
			return "", 0, "", err
		}
		return recognized.Text(), recognized.MeanConfidence(), analyzeFlags.image, nil

	case analyzeFlags.textFile != "":
		data, err := os.ReadFile(analyzeFlags.textFile)
		if err != nil {
			return "", 0, "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), 0, "", nil

	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", 0, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), 0, "", nil
	}
}

// openStore opens the history database honoring --db and the configured
// retention cap
func openStore(cfg *config.Config) (*store.Store, error) {
	path := dbPath
	if path == "" {
		path = store.DefaultDBPath()
	}
	return store.Open(path, cfg.Retention())
}
