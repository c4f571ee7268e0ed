package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"bookfinder/internal/book"
	"bookfinder/internal/usecase"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSearcher struct {
	mu      sync.Mutex
	queries []string
}

func (r *recordingSearcher) Find(_ context.Context, query string) ([]book.Summary, error) {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()
	return []book.Summary{{ID: "/works/OL1W", Title: "Result for " + query, Author: "A", Rating: "3.1", ReviewCount: "1,000"}}, nil
}

func (r *recordingSearcher) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func TestWatch_SearchesOnlySettledQuery(t *testing.T) {
	searcher := &recordingSearcher{}
	session := usecase.NewSearchSession(searcher, 30*time.Millisecond, zap.NewNop())
	defer session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)

	var out bytes.Buffer
	in := strings.NewReader("d\ndu\ndun\ndune\n")
	require.NoError(t, watch(cmd, session, in, &out))

	assert.Equal(t, []string{"dune"}, searcher.calls())
	assert.Contains(t, out.String(), `results for "dune"`)
	assert.Contains(t, out.String(), "Result for dune")

	st := session.State()
	assert.Equal(t, "dune", st.DebouncedQuery)
	assert.False(t, st.IsLoading)
}

func TestWatch_EmptyInput(t *testing.T) {
	searcher := &recordingSearcher{}
	session := usecase.NewSearchSession(searcher, 30*time.Millisecond, zap.NewNop())
	defer session.Close()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	var out bytes.Buffer
	require.NoError(t, watch(cmd, session, strings.NewReader(""), &out))
	assert.Empty(t, searcher.calls())
	assert.Empty(t, out.String())
}
