package main

import (
	"bufio"
	"fmt"
	"io"

	"bookfinder/internal/usecase"

	"github.com/spf13/cobra"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Search as you type: each input line replaces the current query",
		Long: "Reads queries from standard input, one per line. Each line replaces the\n" +
			"query text as if typed; searches run once input has been quiet for the\n" +
			"configured debounce window. Exits after input ends and the last query settles.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := usecase.NewSearchSession(ctx.search, ctx.cfg.Search.Debounce(), ctx.logger.Named("session"))
			defer session.Close()
			return watch(cmd, session, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func watch(cmd *cobra.Command, session *usecase.SearchSession, in io.Reader, out io.Writer) error {
	states, unsubscribe := session.Subscribe()
	defer unsubscribe()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-cmd.Context().Done():
				return
			}
		}
	}()

	var last string
	var lastShown string
	inputDone := false

	for {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case line, ok := <-lines:
			if !ok {
				inputDone = true
				lines = nil
				if settled(session.State(), last) {
					return nil
				}
				continue
			}
			last = line
			session.SetQuery(line)
		case st, ok := <-states:
			if !ok {
				return nil
			}
			lastShown = showState(out, st, lastShown)
			if inputDone && settled(st, last) {
				return nil
			}
		}
	}
}

func settled(st usecase.SearchState, last string) bool {
	return st.Query == last && st.DebouncedQuery == last && !st.IsLoading
}

// showState prints loading and result changes and skips keystroke-only updates.
func showState(out io.Writer, st usecase.SearchState, lastShown string) string {
	key := fmt.Sprintf("%s|%t|%d|%v", st.DebouncedQuery, st.IsLoading, len(st.Results), st.Err)
	if key == lastShown {
		return lastShown
	}
	switch {
	case st.Err != nil:
		fmt.Fprintf(out, "search for %q failed: %v\n", st.DebouncedQuery, st.Err)
	case st.IsLoading:
		fmt.Fprintf(out, "searching %q...\n", st.DebouncedQuery)
	case st.DebouncedQuery == "":
		return key
	default:
		fmt.Fprintf(out, "results for %q:\n%s\n", st.DebouncedQuery, renderSummaries(st.Results))
	}
	return key
}
