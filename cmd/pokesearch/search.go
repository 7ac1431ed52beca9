package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokesearch/internal/errors"
	"github.com/KirkDiggler/pokesearch/internal/orchestrators/lookup"
	"github.com/KirkDiggler/pokesearch/internal/pkg/idgen"
	"github.com/KirkDiggler/pokesearch/internal/session"
	"github.com/KirkDiggler/pokesearch/internal/view"
)

var searchCmd = &cobra.Command{
	Use:   "search [name-or-number]",
	Short: "Look up a single Pokemon",
	Long:  `Look up a Pokemon by name or National Dex number and print its card.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := withSignals(cmd.Context())
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.cleanup()

	query := strings.ToLower(strings.Join(args, "-"))
	searchID := idgen.NewUUID(session.SearchIDPrefix).Generate()

	out, err := a.service.Lookup(ctx, &lookup.LookupInput{Query: query, SearchID: searchID})
	if err != nil {
		if !errors.IsNotFound(err) {
			return err
		}
		writeError(cmd, errors.GetMessage(err))
		return errReported
	}

	return writeModel(cmd, view.NewModel(out))
}

func writeModel(cmd *cobra.Command, m *view.Model) error {
	if jsonOutput {
		return view.RenderJSON(cmd.OutOrStdout(), m)
	}
	return view.RenderText(cmd.OutOrStdout(), m)
}

func writeError(cmd *cobra.Command, message string) {
	if jsonOutput {
		_ = view.RenderJSON(cmd.OutOrStdout(), view.ErrorResult{Error: message})
		return
	}
	_ = view.RenderError(cmd.OutOrStdout(), message)
}

func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
