package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	outputFormat string
	dbPath       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatlens",
	Short: "Analyze conversation screenshots and suggest replies",
	Long: `chatlens turns recognized text from chat screenshots into a structured
conversation analysis: who said what, per-message sentiment, overall tone,
key topics, and communication patterns.

The tool has three main modes:
  - analyze: run text recognition and the conversation analyzer on new input
  - suggest: ask an LLM for reply suggestions for an analyzed conversation
  - history: browse, export, and prune locally stored analyses

All analyses are stored in a local SQLite database with a most-recent-N
retention cap.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, compact)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: ~/.chatlens/chatlens.db)")
}

// OutputJSON writes JSON to stdout with optional pretty printing
func OutputJSON(data interface{}) error {
	var output []byte
	var err error

	if outputFormat == "json" {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Println(string(output))
	return nil
}

// OutputError writes error message to stderr
func OutputError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
