package explorer

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-explorer/api/places"
	"review-explorer/dao"
	"review-explorer/db"
	"review-explorer/logger"
	services "review-explorer/service"
)

// syncBuffer is a bytes.Buffer safe for the debouncer goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestExplorer(t *testing.T, limiter *services.RateLimiter) (*Explorer, *syncBuffer) {
	t.Helper()
	mock, err := places.NewPlacesApiClientMock()
	require.NoError(t, err)

	controller := services.NewSearchController("cli", mock, limiter, services.ControllerOptions{
		DebounceInterval: 10 * time.Millisecond,
		Logger:           logger.Discard(),
	})
	t.Cleanup(controller.Close)

	out := &syncBuffer{}
	summaries := services.NewSummaryService(nil, mock, "en", logger.Discard())
	return New(controller, summaries, services.NewChatService(), limiter, out), out
}

func search(t *testing.T, e *Explorer, out *syncBuffer, query, expect string) {
	t.Helper()
	e.Handle(context.Background(), query)
	require.Eventually(t, func() bool { return strings.Contains(out.String(), expect) }, time.Second, 5*time.Millisecond)
}

func TestExplorer_SearchSelectSummaryChat(t *testing.T) {
	e, out := newTestExplorer(t, nil)
	ctx := context.Background()

	search(t, e, out, "restaurant", "1. Ristorante Italiano")

	assert.True(t, e.Handle(ctx, ":select 1"))
	assert.Contains(t, out.String(), "Rating 4.2 (127 reviews)")
	assert.Contains(t, out.String(), "John Smith")

	e.Handle(ctx, ":summary")
	assert.Contains(t, out.String(), "AI summary (demo)")
	assert.Contains(t, out.String(), "Pros: Excellent food quality")

	e.Handle(ctx, ":chat")
	assert.Contains(t, out.String(), "I can help you learn more about Ristorante Italiano")

	e.Handle(ctx, ":chat Do I need a reservation?")
	assert.Contains(t, out.String(), "reservations are highly recommended")

	e.Handle(ctx, ":back")
	e.Handle(ctx, ":summary")
	assert.Contains(t, out.String(), "Open a place first")
}

func TestExplorer_SelectOutOfRange(t *testing.T) {
	e, out := newTestExplorer(t, nil)

	e.Handle(context.Background(), ":select 3")

	assert.Contains(t, out.String(), "Pick a result between 1 and 0.")
}

func TestExplorer_QuotaReadout(t *testing.T) {
	limiter := services.NewRateLimiter(dao.NewClientStateDAO(db.NewMemoryStateClient()), 10)
	e, out := newTestExplorer(t, limiter)
	ctx := context.Background()

	search(t, e, out, "hotel", "1. Grand Hotel Manhattan")
	e.Handle(ctx, ":select 1")
	e.Handle(ctx, ":quota")

	assert.Contains(t, out.String(), "9 of 10 place lookups left today.")
}

func TestExplorer_DemoQuota(t *testing.T) {
	e, out := newTestExplorer(t, nil)

	e.Handle(context.Background(), ":quota")

	assert.Contains(t, out.String(), "Demo mode")
}

func TestExplorer_RunStopsOnQuit(t *testing.T) {
	e, out := newTestExplorer(t, nil)

	err := e.Run(context.Background(), strings.NewReader(":help\n:quit\n:help\n"))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Try: restaurant, coffee shop, hotel")
	assert.Equal(t, 2, strings.Count(out.String(), ":select N"))
}

func waitForReader(t *testing.T, e *Explorer) {
	t.Helper()
	stopped := make(chan struct{})
	go func() {
		e.reading.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("input reader still running")
	}
}

func TestExplorer_QuitReleasesInputReader(t *testing.T) {
	e, _ := newTestExplorer(t, nil)

	err := e.Run(context.Background(), strings.NewReader(":quit\n:help\n:help\n"))

	require.NoError(t, err)
	waitForReader(t, e)
}

func TestExplorer_CancelReleasesInputReader(t *testing.T) {
	e, out := newTestExplorer(t, nil)
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())

	runErr := make(chan error, 1)
	go func() { runErr <- e.Run(ctx, pr) }()
	require.Eventually(t, func() bool { return strings.Contains(out.String(), ":select N") }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-runErr)

	// The reader wakes up on the next line and exits instead of blocking.
	_, err := pw.Write([]byte(":help\n"))
	require.NoError(t, err)
	waitForReader(t, e)
	assert.Equal(t, 1, strings.Count(out.String(), ":select N"))
}

func TestExplorer_UnknownCommand(t *testing.T) {
	e, out := newTestExplorer(t, nil)

	assert.True(t, e.Handle(context.Background(), ":dance"))
	assert.Contains(t, out.String(), `Unknown command "dance"`)
}
