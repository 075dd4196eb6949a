package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/qyinm/ballottui/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCandidatesURL = "https://elections-results-757f2.firebaseio.com"
	DefaultResultsURL    = "https://elections-b726c.firebaseio.com"
	userAgent            = "ballottui/1.0 (+https://github.com/qyinm/ballottui)"
)

// Options configures a Loader. Zero values use the defaults above.
type Options struct {
	CandidatesURL string
	ResultsURL    string
	Client        *http.Client
	Logger        *zap.Logger
}

// Loader implements types.CandidateSource over the two JSON feeds. Results
// are kept in memory for the life of the process; concurrent requests for
// the same URL share one HTTP call.
type Loader struct {
	candidatesURL string
	resultsURL    string
	client        *http.Client
	log           *zap.Logger
	group         singleflight.Group
	cache         map[string]cachedResult
	mu            sync.Mutex
}

type cachedResult struct {
	records   []types.Candidate
	timestamp time.Time
}

// Compile-time interface check
var _ types.CandidateSource = (*Loader)(nil)

// New creates a Loader with a 10s HTTP client and an empty cache.
func New(opts Options) *Loader {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		candidatesURL: baseOrDefault(opts.CandidatesURL, DefaultCandidatesURL),
		resultsURL:    baseOrDefault(opts.ResultsURL, DefaultResultsURL),
		client:        client,
		log:           log.Named("loader"),
		cache:         make(map[string]cachedResult),
	}
}

func baseOrDefault(raw, fallback string) string {
	v := strings.TrimRight(strings.TrimSpace(raw), "/")
	if v == "" {
		return fallback
	}
	return v
}

// URL returns the feed address for req:
// results mode reads <results>/<electionId>/results.json,
// listing mode reads <candidates>/.json.
func (l *Loader) URL(req types.Request) (string, error) {
	switch req.Mode {
	case types.Results:
		id := strings.TrimSpace(req.ElectionID)
		if id == "" {
			return "", ErrMissingElectionID
		}
		return l.resultsURL + "/" + url.PathEscape(id) + "/results.json", nil
	case types.Listing:
		return l.candidatesURL + "/.json", nil
	default:
		return "", fmt.Errorf("unknown mode %d", req.Mode)
	}
}

// GetCandidates fetches and decodes the feed selected by req.
func (l *Loader) GetCandidates(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	u, err := l.URL(req)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if cached, ok := l.cache[u]; ok {
		l.mu.Unlock()
		return cached.records, nil
	}
	l.mu.Unlock()

	// The shared fetch outlives any one caller; the client timeout bounds it.
	ch := l.group.DoChan(u, func() (any, error) {
		return l.fetch(context.WithoutCancel(ctx), u, req.Mode)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		l.log.Warn("fetch failed", zap.String("url", u), zap.Error(res.Err))
		return nil, res.Err
	}
	records := res.Val.([]types.Candidate)
	shared := res.Shared
	l.log.Debug("fetched candidates",
		zap.String("url", u),
		zap.Stringer("mode", req.Mode),
		zap.Int("count", len(records)),
		zap.Bool("shared", shared))
	return records, nil
}

func (l *Loader) fetch(ctx context.Context, u string, mode types.Mode) ([]types.Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", mode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var records []types.Candidate
	if mode == types.Results {
		records, err = ParseResults(resp.Body)
	} else {
		records, err = ParseListing(resp.Body)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", mode, err)
	}

	l.mu.Lock()
	l.cache[u] = cachedResult{records: records, timestamp: time.Now()}
	l.mu.Unlock()
	return records, nil
}

// ClearCache clears the in-memory cache.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]cachedResult)
}
