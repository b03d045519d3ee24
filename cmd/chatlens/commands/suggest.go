package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatlensapp/chatlens/internal/config"
	"github.com/chatlensapp/chatlens/internal/llm"
)

var suggestFlags struct {
	id   string
	tone string
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest replies for a stored conversation",
	Long: `Suggest asks the configured LLM for reply suggestions for a previously
analyzed conversation. If the call fails or returns something unparseable,
canned suggestions matched to the analyzed tone are returned instead, so
this command always produces usable output.`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestFlags.id, "id", "", "Conversation ID from history (required)")
	suggestCmd.Flags().StringVar(&suggestFlags.tone, "tone", "auto", "Requested reply tone (auto, gentle, direct, playful)")
	suggestCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(suggestCmd)
}

type suggestOutput struct {
	ConversationID string           `json:"conversation_id"`
	Suggestions    []llm.Suggestion `json:"suggestions"`
	Fallback       bool             `json:"fallback"`
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.GetConversation(suggestFlags.id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("conversation %s not found", suggestFlags.id)
	}

	apiKey := cfg.OpenAIAPIKey()
	if apiKey == "" {
		return fmt.Errorf("missing OpenAI API key (set OPENAI_API_KEY or llm.api_key)")
	}

	suggester := llm.NewSuggester(apiKey, cfg.Model())
	set, err := suggester.Suggest(cmd.Context(), &rec.Conversation, suggestFlags.tone)
	if err != nil {
		// Read path: log and fall back rather than fail the command
		OutputError("suggestion call failed, using fallback: %v", err)
		set = llm.Fallback(rec.Tone.OverallTone)
	}

	return OutputJSON(suggestOutput{
		ConversationID: rec.ID,
		Suggestions:    set.Suggestions,
		Fallback:       set.Fallback,
	})
}
