package cli

import (
	"fmt"
	"os"

	"github.com/bookworm-labs/book-review-hub/cli/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "bookhub",
	Short:   "Book Review Hub command line client",
	Long:    `bookhub is a command line client for the Book Review Hub API: browse the catalog, manage your books, and write reviews from the terminal.`,
	Version: "1.0.0",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local configuration",
	Long:  `Create ~/.bookhub/config.yaml with default server settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			printError(fmt.Sprintf("Failed to initialize configuration: %s", err))
			return err
		}
		path, _ := config.GetConfigPath()
		printSuccess("Configuration initialized")
		fmt.Printf("Config file: %s\n", path)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printSuccess(msg string) {
	fmt.Printf("✓ %s\n", msg)
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(booksCmd)
}
