package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesearch/internal/orchestrators/lookup"
	"github.com/KirkDiggler/pokesearch/internal/session"
	"github.com/KirkDiggler/pokesearch/internal/view"
)

const interactiveHelp = `Type a name or number to search.
  ?text   suggest names containing text
  :reset  clear the current result
  :quit   exit`

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"repl"},
	Short:   "Search repeatedly from a prompt",
	Long:    `Start a prompt that searches each line entered, with name suggestions via ?text.`,
	Args:    cobra.NoArgs,
	RunE:    runInteractive,
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	ctx, stop := withSignals(cmd.Context())
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.cleanup()

	if out, err := a.service.LoadRoster(ctx, &lookup.LoadRosterInput{}); err != nil {
		a.logger.Warn("Suggestions unavailable", zap.Error(err))
	} else {
		a.logger.Debug("Roster ready", zap.Int("count", out.Count), zap.Bool("from_store", out.FromStore))
	}

	w := &lockedWriter{w: cmd.OutOrStdout()}
	sess, err := session.New(&session.Config{
		Service: a.service,
		Logger:  a.logger,
		OnChange: func(snap *session.Snapshot) {
			if snap.State == session.StateLoading && !jsonOutput {
				fmt.Fprintln(w, "Loading...")
			}
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, interactiveHelp)
	return repl(ctx, cmd.InOrStdin(), w, a.service, sess)
}

// repl reads one command per line. Searches run in the background so a newer
// query can be entered while an older one loads; the session drops stale results.
// A canceled ctx ends the loop without waiting for the next line.
func repl(ctx context.Context, in io.Reader, w io.Writer, service lookup.Service, sess *session.Session) error {
	var inflight conc.WaitGroup
	defer inflight.Wait()

	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	for {
		fmt.Fprint(w, "> ")

		var next scannedLine
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return nil
		case next = <-lines:
		}
		if next.eof {
			fmt.Fprintln(w)
			return next.err
		}

		line := strings.TrimSpace(next.text)
		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":q":
			return nil
		case line == ":reset":
			sess.Reset()
		case line == ":help":
			fmt.Fprintln(w, interactiveHelp)
		case strings.HasPrefix(line, "?"):
			out, err := service.Suggest(ctx, &lookup.SuggestInput{Query: strings.ToLower(strings.TrimSpace(line[1:]))})
			if err != nil {
				return err
			}
			if len(out.Suggestions) == 0 {
				fmt.Fprintln(w, "No suggestions.")
				continue
			}
			if err := view.RenderSuggestions(w, out.Suggestions); err != nil {
				return err
			}
		default:
			query := strings.ToLower(line)
			inflight.Go(func() {
				snap, current := sess.Submit(ctx, query)
				if !current {
					return
				}
				_ = renderSnapshot(w, snap)
			})
		}
	}
}

type scannedLine struct {
	text string
	eof  bool
	err  error
}

// readLines scans in on its own goroutine until EOF or done is closed.
// A read blocked on a terminal stays blocked until the process exits.
func readLines(in io.Reader, done <-chan struct{}) <-chan scannedLine {
	lines := make(chan scannedLine)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scannedLine{text: scanner.Text()}:
			case <-done:
				return
			}
		}
		select {
		case lines <- scannedLine{eof: true, err: scanner.Err()}:
		case <-done:
		}
	}()
	return lines
}

// lockedWriter serializes writes from background searches and the prompt
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func renderSnapshot(w io.Writer, snap *session.Snapshot) error {
	var buf bytes.Buffer
	if err := renderSnapshotTo(&buf, snap); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func renderSnapshotTo(w io.Writer, snap *session.Snapshot) error {
	switch snap.State {
	case session.StateError:
		if jsonOutput {
			return view.RenderJSON(w, view.ErrorResult{Error: snap.Message})
		}
		return view.RenderError(w, snap.Message)
	case session.StateSuccess:
		m := view.NewModel(snap.Result)
		if jsonOutput {
			return view.RenderJSON(w, m)
		}
		return view.RenderText(w, m)
	default:
		return nil
	}
}
