package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/qyinm/ballottui/config"
	"github.com/qyinm/ballottui/mcpsrv/dto"
	"github.com/qyinm/ballottui/types"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	records []types.Candidate
	err     error
	got     types.Request
}

func (s *stubSource) GetCandidates(_ context.Context, req types.Request) ([]types.Candidate, error) {
	s.got = req
	return s.records, s.err
}

// isolateEnv keeps the developer's .env and BALLOTTUI_* settings out of a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{
		config.EnvConfigPath, config.EnvResults, config.EnvElectionID,
		config.EnvStudentOfficers, config.EnvNetworkOfficers, config.EnvAcademicGroups,
		config.EnvActiveID, config.EnvCandidatesURL, config.EnvResultsURL,
		config.EnvLogFile, config.EnvDebug,
	} {
		t.Setenv(key, "")
	}
}

func TestResolveConfigFlagsOverrideEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.EnvElectionID, "from-env")
	t.Setenv(config.EnvStudentOfficers, "President")

	opts := &rootOptions{}
	cmd := newRootCmdFor(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--results", "--election-id", "from-flag", "--active-id", "no"}))

	election, err := resolveConfig(cmd, opts)
	require.NoError(t, err)

	assert.True(t, election.Results)
	assert.Equal(t, "from-flag", election.ElectionID)
	assert.Equal(t, "President", election.StudentOfficers, "unset flags keep the env value")
	assert.Equal(t, "NO", election.ActiveID)
}

func TestResolveConfigReadsFileFlag(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "election.yaml")
	require.NoError(t, os.WriteFile(path, []byte("academic_groups: \"Law|Bioscience\"\n"), 0o644))

	opts := &rootOptions{}
	cmd := newRootCmdFor(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	election, err := resolveConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "Law|Bioscience", election.AcademicGroups)
}

func TestResolveConfigValidates(t *testing.T) {
	isolateEnv(t)

	opts := &rootOptions{}
	cmd := newRootCmdFor(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--results"}))

	_, err := resolveConfig(cmd, opts)
	assert.ErrorContains(t, err, "election_id")
}

func fixtureElection() config.Election {
	election := config.Default()
	election.StudentOfficers = "President"
	election.AcademicGroups = "Bioscience"
	return election
}

func fixtureRecords() []types.Candidate {
	return []types.Candidate{
		types.NewCandidate(types.PlainTitle("President"), map[string]string{"Name": "Ada"}),
		types.NewCandidate(types.PlainTitle("Bioscience Faculty Rep"), map[string]string{"Name": "Fi"}),
	}
}

func TestPrintTreeText(t *testing.T) {
	src := &stubSource{records: fixtureRecords()}
	var buf bytes.Buffer

	err := printTree(context.Background(), &buf, src, fixtureElection(), &treeOptions{candidates: true}, nil)
	require.NoError(t, err)

	want := "Student Officers (1) *\n" +
		"  President (1) *\n" +
		"    - Ada\n" +
		"Academic (1)\n" +
		"  Bioscience (1) *\n" +
		"    - Fi\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, types.Listing, src.got.Mode)
}

func TestPrintTreeJSON(t *testing.T) {
	src := &stubSource{records: fixtureRecords()}
	var buf bytes.Buffer

	require.NoError(t, printTree(context.Background(), &buf, src, fixtureElection(), &treeOptions{json: true}, nil))

	var out dto.Tree
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "listing", out.Mode)
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Tabs, 2)
	assert.Equal(t, "SO0", out.Tabs[0].ID)
	assert.Empty(t, out.Tabs[0].Children[0].Candidates)
}

func TestPrintTreeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTree(context.Background(), &buf, &stubSource{}, config.Default(), &treeOptions{}, nil))
	assert.Equal(t, "no tabs\n", buf.String())
}

func TestPrintTreeFetchError(t *testing.T) {
	src := &stubSource{err: errors.New("boom")}
	err := printTree(context.Background(), &bytes.Buffer{}, src, fixtureElection(), &treeOptions{}, nil)
	assert.ErrorContains(t, err, "fetch candidates: boom")
}

func TestTreeCommandAgainstFeed(t *testing.T) {
	isolateEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spring-26/results.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"-b":{"Name":"Bo","Post":"President","Votes":7},"-a":{"Name":"Ada","Post":"President","Votes":9}}`))
	}))
	defer srv.Close()
	t.Setenv(config.EnvResultsURL, srv.URL)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"tree", "--results", "--election-id", "spring-26", "--student-officers", "President", "--candidates", "--log-file", filepath.Join(t.TempDir(), "tree.log")})
	require.NoError(t, cmd.Execute())

	want := "Student Officers (2) *\n" +
		"  All (2) *\n" +
		"    - Ada\n" +
		"    - Bo\n" +
		"  President (2)\n" +
		"    - Ada\n" +
		"    - Bo\n"
	assert.Equal(t, want, out.String())
}
