package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokesearch/internal/orchestrators/lookup"
	"github.com/KirkDiggler/pokesearch/internal/view"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [partial-name]",
	Short: "Suggest Pokemon names",
	Long:  `Print up to five names from the first 151 Pokemon that contain the given text.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx, stop := withSignals(cmd.Context())
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.cleanup()

	out, err := a.service.Suggest(ctx, &lookup.SuggestInput{Query: strings.ToLower(args[0])})
	if err != nil {
		return err
	}

	if jsonOutput {
		suggestions := out.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		return view.RenderJSON(cmd.OutOrStdout(), suggestions)
	}
	return view.RenderSuggestions(cmd.OutOrStdout(), out.Suggestions)
}
