package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Work with the persisted article",
	RunE:  runArticleShow,
}

var articleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted article text",
	RunE:  runArticleShow,
}

var articleOpenCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Load a markdown file as the current article",
	Long: `Read a markdown file (.md or .markdown) and make it the persisted
article. The next editor session starts from this text.`,
	Args: cobra.ExactArgs(1),
	RunE: runArticleOpen,
}

func init() {
	articleCmd.AddCommand(articleShowCmd)
	articleCmd.AddCommand(articleOpenCmd)
	rootCmd.AddCommand(articleCmd)
}

func runArticleShow(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	cmd.Print(contentService.Load())
	return nil
}

func runArticleOpen(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	text, err := contentService.OpenArticle(args[0])
	if err != nil {
		return fmt.Errorf("failed to open article: %w", err)
	}

	cmd.Printf("Loaded %s (%d bytes)\n", args[0], len(text))
	return nil
}
