package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/qyinm/ballottui/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Loader) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	l := New(Options{CandidatesURL: srv.URL + "/", ResultsURL: srv.URL, Client: srv.Client()})
	return srv, l
}

func TestURLConstruction(t *testing.T) {
	l := New(Options{})

	tests := []struct {
		name string
		req  types.Request
		want string
	}{
		{"listing", types.Request{Mode: types.Listing}, DefaultCandidatesURL + "/.json"},
		{"listing ignores election id", types.Request{Mode: types.Listing, ElectionID: "e1"}, DefaultCandidatesURL + "/.json"},
		{"results", types.Request{Mode: types.Results, ElectionID: " spring-26 "}, DefaultResultsURL + "/spring-26/results.json"},
		{"results escapes id", types.Request{Mode: types.Results, ElectionID: "a/b"}, DefaultResultsURL + "/a%2Fb/results.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.URL(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := l.URL(types.Request{Mode: types.Results})
	assert.ErrorIs(t, err, ErrMissingElectionID)
}

func TestGetCandidatesListing(t *testing.T) {
	_, l := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"Candidates": [{"Name": "Ada", "Post": "President"}]}`))
	})

	records, err := l.GetCandidates(context.Background(), types.Request{Mode: types.Listing})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "President", records[0].PostTitle())
}

func TestGetCandidatesResults(t *testing.T) {
	_, l := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/e42/results.json", r.URL.Path)
		_, _ = w.Write([]byte(`[{"Name": "Ada", "Post": {"Title": "President"}}]`))
	})

	records, err := l.GetCandidates(context.Background(), types.Request{Mode: types.Results, ElectionID: "e42"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ada", records[0].Name())
}

func TestGetCandidatesCachesAndClears(t *testing.T) {
	var hits atomic.Int32
	_, l := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"Candidates": []}`))
	})
	ctx := context.Background()
	req := types.Request{Mode: types.Listing}

	for i := 0; i < 3; i++ {
		_, err := l.GetCandidates(ctx, req)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())

	l.ClearCache()
	_, err := l.GetCandidates(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestGetCandidatesSharesInFlightRequest(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	_, l := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"Candidates": [{"Name": "Ada", "Post": "President"}]}`))
	})

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.GetCandidates(context.Background(), types.Request{Mode: types.Listing})
			errs <- err
		}()
	}
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, hits.Load(), int32(4))
	assert.GreaterOrEqual(t, hits.Load(), int32(1))
}

func TestGetCandidatesSharedFetchSurvivesCallerCancel(t *testing.T) {
	var hits atomic.Int32
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	_, l := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		arrived <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`{"Candidates": [{"Name": "Ada", "Post": "President"}]}`))
	})
	req := types.Request{Mode: types.Listing}

	ctx1, cancel1 := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := l.GetCandidates(ctx1, req)
		firstErr <- err
	}()
	<-arrived

	type result struct {
		records []types.Candidate
		err     error
	}
	second := make(chan result, 1)
	go func() {
		records, err := l.GetCandidates(context.Background(), req)
		second <- result{records, err}
	}()

	cancel1()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	time.Sleep(50 * time.Millisecond)
	close(release)

	got := <-second
	require.NoError(t, got.err)
	require.Len(t, got.records, 1)
	assert.Equal(t, "Ada", got.records[0].Name())
	assert.Equal(t, int32(1), hits.Load())

	_, err := l.GetCandidates(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetCandidatesStatusError(t *testing.T) {
	_, l := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusUnauthorized)
	})

	_, err := l.GetCandidates(context.Background(), types.Request{Mode: types.Listing})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Contains(t, statusErr.Error(), "permission denied")
}

func TestGetCandidatesMalformedBodyNotCached(t *testing.T) {
	var hits atomic.Int32
	_, l := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"Candidates": [`))
	})

	for i := 0; i < 2; i++ {
		_, err := l.GetCandidates(context.Background(), types.Request{Mode: types.Listing})
		require.Error(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestGetCandidatesMissingElectionID(t *testing.T) {
	_, l := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := l.GetCandidates(context.Background(), types.Request{Mode: types.Results})
	assert.ErrorIs(t, err, ErrMissingElectionID)
}
