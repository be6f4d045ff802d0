package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Itish41/ActionScribe/extract"
	"github.com/spf13/cobra"
)

type extractOptions struct {
	texts      bool
	assignee   string
	highOnly   bool
	categorize bool
	sort       bool
}

func newExtractCmd() *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Print the action items found in a note as JSON",
		Long: `Read a note from file, or from stdin when no file (or "-") is given, and
print the action items found in it as JSON. Nothing is stored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readNote(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return runExtract(cmd.OutOrStdout(), text, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.texts, "texts", false, "print only the item texts")
	cmd.Flags().StringVar(&opts.assignee, "assignee", "", "keep only items assigned to this person (any case)")
	cmd.Flags().BoolVar(&opts.highOnly, "high-only", false, "keep only high priority items")
	cmd.Flags().BoolVar(&opts.categorize, "categorize", false, "group items by priority and category")
	cmd.Flags().BoolVar(&opts.sort, "sort", false, "order items from high to low priority")
	cmd.MarkFlagsMutuallyExclusive("texts", "categorize")
	return cmd
}

func readNote(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read note: %w", err)
	}
	return string(b), nil
}

func runExtract(out io.Writer, text string, opts extractOptions) error {
	items := extract.ExtractDetailed(text)
	if opts.assignee != "" {
		items = extract.FilterByAssignee(items, opts.assignee)
	}
	if opts.highOnly {
		items = extract.HighPriorityOnly(items)
	}
	if opts.sort {
		items = extract.SortByPriority(items)
	}
	if items == nil {
		items = []extract.ActionItem{}
	}

	var v any = items
	switch {
	case opts.texts:
		texts := make([]string, 0, len(items))
		for _, item := range items {
			texts = append(texts, item.Text)
		}
		v = texts
	case opts.categorize:
		v = extract.Categorize(items)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
