// Package explorer is the interactive terminal front end. Every input line
// is fed to the search controller as if it had been typed, so searches go
// through the same debounced pipeline as the HTTP API.
package explorer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"review-explorer/apperrors"
	"review-explorer/config"
	"review-explorer/models"
	services "review-explorer/service"
)

const helpText = `Type to search. Commands:
  :select N      open result N
  :summary       AI review summary of the open place
  :chat [text]   ask the assistant about the open place
  :back          close the open place
  :clear         clear the search
  :quota         remaining place lookups today
  :quit          exit`

type Explorer struct {
	controller *services.SearchController
	summaries  *services.SummaryService
	chat       *services.ChatService
	limiter    *services.RateLimiter

	mu      sync.Mutex
	out     io.Writer
	results []models.Place

	// Tracks the input reader goroutine started by Run.
	reading sync.WaitGroup
}

// New creates an explorer. A nil limiter hides the quota readout.
func New(controller *services.SearchController, summaries *services.SummaryService, chat *services.ChatService, limiter *services.RateLimiter, out io.Writer) *Explorer {
	e := &Explorer{
		controller: controller,
		summaries:  summaries,
		chat:       chat,
		limiter:    limiter,
		out:        out,
	}
	controller.SetResultsHandler(e.showResults)
	return e
}

// Run reads lines from in until EOF, :quit or ctx is cancelled.
func (e *Explorer) Run(ctx context.Context, in io.Reader) error {
	defer e.controller.Close()

	e.printf("Search for places and read their reviews. Try: %s\n", strings.Join(config.ExampleSearches, ", "))
	e.printf("%s\n", helpText)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	e.reading.Add(1)
	go func() {
		defer e.reading.Done()
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			if !e.Handle(ctx, line) {
				return nil
			}
		}
	}
}

// Handle processes one input line. It returns false when the user quits.
func (e *Explorer) Handle(ctx context.Context, line string) bool {
	if !strings.HasPrefix(line, ":") {
		e.controller.Type(line)
		return true
	}

	command, arg, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(line), ":"), " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "quit", "q":
		return false
	case "help", "h":
		e.printf("%s\n", helpText)
	case "select", "s":
		e.selectResult(ctx, arg)
	case "summary":
		e.showSummary(ctx)
	case "chat":
		e.askAssistant(arg)
	case "back":
		e.controller.Leave()
		e.printf("Back to search.\n")
	case "clear":
		e.controller.Clear()
		e.setResults(nil)
		e.printf("Search cleared.\n")
	case "quota":
		e.showQuota(ctx)
	default:
		e.printf("Unknown command %q. Type :help for help.\n", command)
	}
	return true
}

func (e *Explorer) showResults(places []models.Place, err error) {
	if err != nil {
		e.printf("Search failed: %v\n", err)
		return
	}
	e.setResults(places)
	if len(places) == 0 {
		return
	}

	var b strings.Builder
	for i, p := range places {
		fmt.Fprintf(&b, "%2d. %s", i+1, p.Name)
		if p.Address != "" {
			fmt.Fprintf(&b, " - %s", p.Address)
		}
		fmt.Fprintf(&b, " [%s]\n", p.Type)
	}
	e.printf("%s", b.String())
}

func (e *Explorer) selectResult(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	e.mu.Lock()
	count := len(e.results)
	var placeID string
	if err == nil && n >= 1 && n <= count {
		placeID = e.results[n-1].ID
	}
	e.mu.Unlock()

	if placeID == "" {
		e.printf("Pick a result between 1 and %d.\n", count)
		return
	}

	result, err := e.controller.Select(ctx, placeID)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			e.printf("%s\n", appErr.Message)
			return
		}
		e.printf("Could not load place: %v\n", err)
		return
	}
	e.printPlace(result)
}

func (e *Explorer) printPlace(result services.SelectResult) {
	p := result.Place
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n%s\n", p.Name, p.Address)
	fmt.Fprintf(&b, "Rating %.1f (%d reviews)  Price %s  %s\n", p.Rating, p.TotalReviews(), priceLabel(p.PriceLevel), openLabel(p.IsOpen))
	for _, r := range p.Reviews {
		fmt.Fprintf(&b, "  %.0f* %s (%s): %s\n", r.Rating, r.AuthorName, r.RelativeTimeDescription, r.Text)
	}
	if result.Notice != "" {
		fmt.Fprintf(&b, "Note: %s\n", result.Notice)
	}
	e.printf("%s", b.String())
}

func (e *Explorer) showSummary(ctx context.Context) {
	place, ok := e.controller.Current()
	if !ok {
		e.printf("Open a place first with :select N.\n")
		return
	}

	summary, err := e.summaries.Summarize(ctx, &place)
	if errors.Is(err, apperrors.ErrUnavailable) {
		e.printf("%s\n", services.SummaryUnavailableMessage)
		return
	}
	if err != nil {
		e.printf("Could not load summary: %v\n", err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nAI summary (%s)\n%s\n", summary.Source, summary.SentimentSummary)
	writeList(&b, "Pros", summary.Pros)
	writeList(&b, "Cons", summary.Cons)
	writeList(&b, "Themes", summary.KeyThemes)
	if summary.Recommendation != "" {
		fmt.Fprintf(&b, "Recommendation: %s\n", summary.Recommendation)
	}
	if a := summary.Attribution; a != nil {
		fmt.Fprintf(&b, "%s\nReviews: %s\nReport: %s\n", a.DisclosureText, a.ReviewsURI, a.FlagContentURI)
	}
	e.printf("%s", b.String())
}

func (e *Explorer) askAssistant(question string) {
	place, ok := e.controller.Current()
	if !ok {
		e.printf("Open a place first with :select N.\n")
		return
	}
	if question == "" {
		e.printf("Assistant: %s\n", e.chat.Greeting(place).Text)
		return
	}

	messages, err := e.chat.Reply(place, question)
	if err != nil {
		e.printf("%v\n", err)
		return
	}
	e.printf("Assistant: %s\n", messages[len(messages)-1].Text)
}

func (e *Explorer) showQuota(ctx context.Context) {
	if e.limiter == nil {
		e.printf("Demo mode: place lookups are unlimited.\n")
		return
	}
	remaining, err := e.limiter.Remaining(ctx, e.controller.ClientID())
	if err != nil {
		e.printf("Could not read quota: %v\n", err)
		return
	}
	e.printf("%d of %d place lookups left today.\n", remaining, e.limiter.Limit())
}

func (e *Explorer) setResults(places []models.Place) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results = places
}

func (e *Explorer) printf(format string, args ...interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintf(e.out, format, args...)
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", title, strings.Join(items, "; "))
}

func priceLabel(level int) string {
	if level <= 0 {
		return "n/a"
	}
	return strings.Repeat("$", level)
}

func openLabel(open bool) string {
	if open {
		return "Open now"
	}
	return "Closed"
}
