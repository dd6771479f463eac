package reportclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client reads reports from a running catalogdb server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8188".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Review is a review report. Title is empty when the reviewed book is not in the catalog.
type Review struct {
	Title        string `json:"title"`
	ReviewerName string `json:"reviewer_name"`
	Review       string `json:"review"`
}

type BookPrice struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

type DatedReview struct {
	Title      string `json:"title"`
	ReviewTime string `json:"review_time"`
	Review     string `json:"review"`
}

func (c *Client) MostHelpfulReview(ctx context.Context) (Review, error) {
	return get[Review](ctx, c, "/reviews/most_helpful_review")
}

func (c *Client) LeastHelpfulReview(ctx context.Context) (Review, error) {
	return get[Review](ctx, c, "/reviews/least_helpful_review")
}

func (c *Client) MostConciseHelpfulReview(ctx context.Context) (Review, error) {
	return get[Review](ctx, c, "/reviews/most_concise_good_review")
}

func (c *Client) MostExpensiveBook(ctx context.Context) (BookPrice, error) {
	return get[BookPrice](ctx, c, "/books/most_expensive_book")
}

func (c *Client) CheapestBook(ctx context.Context) (BookPrice, error) {
	return get[BookPrice](ctx, c, "/books/cheapest_book")
}

func (c *Client) EarliestReview(ctx context.Context) (DatedReview, error) {
	return get[DatedReview](ctx, c, "/reviews/earliest_review")
}

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return out, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return out, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return out, nil
}

// Field is one labelled value of a report result.
type Field struct {
	Name  string
	Value string
}

// Result is the outcome of one named report.
type Result struct {
	Name    string
	Heading string
	Fields  []Field
	Err     error
}

type report struct {
	name    string
	heading string
	fetch   func(context.Context, *Client) ([]Field, error)
}

// reports lists every report in display order.
var reports = []report{
	{"most_helpful_review", "most helpful review", reviewFields((*Client).MostHelpfulReview)},
	{"least_helpful_review", "least helpful review", reviewFields((*Client).LeastHelpfulReview)},
	{"most_concise_good_review", "most concise yet helpful review", reviewFields((*Client).MostConciseHelpfulReview)},
	{"most_expensive_book", "most expensive book", bookFields((*Client).MostExpensiveBook)},
	{"cheapest_book", "cheapest book", bookFields((*Client).CheapestBook)},
	{"earliest_review", "earliest review", datedFields((*Client).EarliestReview)},
}

// Names returns the report names accepted by Run, in display order.
func Names() []string {
	names := make([]string, len(reports))
	for i, r := range reports {
		names[i] = r.name
	}
	return names
}

// All fetches every report in display order. A failed report is returned
// with its error set and does not stop the others.
func (c *Client) All(ctx context.Context) []Result {
	results := make([]Result, 0, len(reports))
	for _, r := range reports {
		results = append(results, c.run(ctx, r))
	}
	return results
}

// Run fetches the named reports in display order.
func (c *Client) Run(ctx context.Context, names ...string) ([]Result, error) {
	if len(names) == 0 {
		return c.All(ctx), nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var results []Result
	for _, r := range reports {
		if wanted[r.name] {
			results = append(results, c.run(ctx, r))
			delete(wanted, r.name)
		}
	}
	for name := range wanted {
		return nil, fmt.Errorf("unknown report %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return results, nil
}

func (c *Client) run(ctx context.Context, r report) Result {
	fields, err := r.fetch(ctx, c)
	return Result{Name: r.name, Heading: r.heading, Fields: fields, Err: err}
}

func reviewFields(fetch func(*Client, context.Context) (Review, error)) func(context.Context, *Client) ([]Field, error) {
	return func(ctx context.Context, c *Client) ([]Field, error) {
		r, err := fetch(c, ctx)
		if err != nil {
			return nil, err
		}
		return []Field{
			{"title", r.Title},
			{"reviewer_name", r.ReviewerName},
			{"review", r.Review},
		}, nil
	}
}

func bookFields(fetch func(*Client, context.Context) (BookPrice, error)) func(context.Context, *Client) ([]Field, error) {
	return func(ctx context.Context, c *Client) ([]Field, error) {
		b, err := fetch(c, ctx)
		if err != nil {
			return nil, err
		}
		return []Field{
			{"title", b.Title},
			{"price", strconv.FormatFloat(b.Price, 'f', 2, 64)},
		}, nil
	}
}

func datedFields(fetch func(*Client, context.Context) (DatedReview, error)) func(context.Context, *Client) ([]Field, error) {
	return func(ctx context.Context, c *Client) ([]Field, error) {
		r, err := fetch(c, ctx)
		if err != nil {
			return nil, err
		}
		return []Field{
			{"title", r.Title},
			{"review_time", r.ReviewTime},
			{"review", r.Review},
		}, nil
	}
}
