package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatlensapp/chatlens/internal/config"
	"github.com/chatlensapp/chatlens/internal/store"
	"github.com/chatlensapp/chatlens/internal/utils"
)

var historyFlags struct {
	since string
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse stored conversation analyses",
	Long: `History lists locally stored conversation analyses, newest first.
The store keeps only the most recent N conversations (history.retention,
default 50); older ones are pruned automatically on save.`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored conversation in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete stored conversations",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistoryDelete,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export all stored conversations to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.since, "since", "", "Only list conversations since (7d or YYYY-MM-DD)")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 0, "Maximum number of conversations to list")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

// historySummary is the per-conversation line item for listings; the full
// message bodies are only shown by `history show`
type historySummary struct {
	ID           string   `json:"id"`
	Timestamp    string   `json:"timestamp"`
	Title        string   `json:"title,omitempty"`
	Participants []string `json:"participants"`
	MessageCount int      `json:"message_count"`
	OverallTone  string   `json:"overall_tone"`
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := store.ListOptions{Limit: historyFlags.limit}
	if historyFlags.since != "" {
		since, err := utils.ParseSinceDate(historyFlags.since)
		if err != nil {
			return err
		}
		opts.Since = &since
	}

	records, err := s.ListConversations(opts)
	if err != nil {
		return err
	}

	summaries := make([]historySummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, historySummary{
			ID:           rec.ID,
			Timestamp:    rec.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			Title:        rec.Title,
			Participants: rec.Participants,
			MessageCount: len(rec.Messages),
			OverallTone:  string(rec.Tone.OverallTone),
		})
	}

	return OutputJSON(summaries)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.GetConversation(args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("conversation %s not found", args[0])
	}

	return OutputJSON(rec)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	deleted, err := s.DeleteConversations(args...)
	if err != nil {
		return err
	}

	return OutputJSON(map[string]interface{}{
		"requested": len(args),
		"deleted":   deleted,
	})
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ExportJSON(args[0]); err != nil {
		return err
	}

	return OutputJSON(map[string]string{"exported_to": args[0]})
}
