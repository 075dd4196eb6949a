package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/ballottui/config"
	"github.com/qyinm/ballottui/loader"
	"github.com/qyinm/ballottui/logging"
	"github.com/qyinm/ballottui/mcpsrv/dto"
	"github.com/qyinm/ballottui/tabtree"
	"github.com/qyinm/ballottui/types"
	"github.com/qyinm/ballottui/ui"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath      string
	results         bool
	electionID      string
	studentOfficers string
	networkOfficers string
	academicGroups  string
	activeID        string
	logFile         string
	debug           bool
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&rootOptions{})
}

func newRootCmdFor(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ballottui",
		Short:         "Browse election candidates and results in the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			election, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runTUI(cmd, opts, election)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "YAML settings file (default $"+config.EnvConfigPath+")")
	f.BoolVar(&opts.results, "results", false, "show election results instead of the candidate listing")
	f.StringVar(&opts.electionID, "election-id", "", "election to read results for")
	f.StringVar(&opts.studentOfficers, "student-officers", "", "pipe-delimited student officer roles")
	f.StringVar(&opts.networkOfficers, "network-officers", "", "pipe-delimited network officer roles")
	f.StringVar(&opts.academicGroups, "academic-groups", "", "pipe-delimited academic group terms")
	f.StringVar(&opts.activeID, "active-id", "", "category tab to open first: SO|NO|NUS|ACADEMIC")
	f.StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")
	f.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newTreeCmd(opts))
	return cmd
}

// resolveConfig layers explicitly set flags over the file and environment
// settings.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (config.Election, error) {
	election, err := config.Resolve(opts.configPath)
	if err != nil {
		return election, err
	}

	flags := cmd.Flags()
	if flags.Changed("results") {
		election.Results = opts.results
	}
	if flags.Changed("election-id") {
		election.ElectionID = opts.electionID
	}
	if flags.Changed("student-officers") {
		election.StudentOfficers = opts.studentOfficers
	}
	if flags.Changed("network-officers") {
		election.NetworkOfficers = opts.networkOfficers
	}
	if flags.Changed("academic-groups") {
		election.AcademicGroups = opts.academicGroups
	}
	if flags.Changed("active-id") {
		election.ActiveID = strings.ToUpper(strings.TrimSpace(opts.activeID))
	}
	if flags.Changed("log-file") {
		election.LogFile = opts.logFile
	}
	if flags.Changed("debug") {
		election.Debug = opts.debug
	}

	if err := election.Validate(); err != nil {
		return election, err
	}
	return election, nil
}

func newLoader(election config.Election, log *zap.Logger) *loader.Loader {
	return loader.New(loader.Options{
		CandidatesURL: election.CandidatesURL,
		ResultsURL:    election.ResultsURL,
		Logger:        log,
	})
}

func runTUI(cmd *cobra.Command, opts *rootOptions, election config.Election) error {
	log, err := logging.New(logging.Options{File: election.LogFile, Debug: election.Debug, Quiet: true})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	model := ui.NewModel(
		newLoader(election, log),
		tabtree.NewConfig(election.TabOptions()),
		election.Request(),
		log,
	)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if path := config.Path(opts.configPath); path != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		err := config.Watch(ctx, path, 250*time.Millisecond, log, func() {
			next, err := resolveConfig(cmd, opts)
			if err != nil {
				log.Warn("ignoring invalid settings", zap.Error(err))
				return
			}
			p.Send(ui.SettingsMsg{
				Config:  tabtree.NewConfig(next.TabOptions()),
				Request: next.Request(),
			})
		})
		if err != nil {
			log.Warn("settings file will not be reloaded", zap.Error(err))
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

type treeOptions struct {
	json       bool
	candidates bool
	timeout    time.Duration
}

func newTreeCmd(root *rootOptions) *cobra.Command {
	opts := &treeOptions{}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the tab tree once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			election, err := resolveConfig(cmd, root)
			if err != nil {
				return err
			}
			log, err := logging.New(logging.Options{File: election.LogFile, Debug: election.Debug})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			return printTree(ctx, cmd.OutOrStdout(), newLoader(election, log), election, opts, log)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the tree as JSON")
	cmd.Flags().BoolVar(&opts.candidates, "candidates", false, "include candidate names")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 20*time.Second, "feed fetch timeout")
	return cmd
}

func printTree(ctx context.Context, w io.Writer, source types.CandidateSource, election config.Election, opts *treeOptions, log *zap.Logger) error {
	req := election.Request()
	records, err := source.GetCandidates(ctx, req)
	if err != nil {
		return fmt.Errorf("fetch candidates: %w", err)
	}
	tree := tabtree.NewBuilder(tabtree.NewConfig(election.TabOptions()), log).Build(records)

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.FromTree(tree, req, opts.candidates))
	}

	if tree.Empty() {
		_, err := fmt.Fprintln(w, "no tabs")
		return err
	}
	for _, branch := range tree.Branches {
		writeNode(w, branch, 0, opts.candidates)
	}
	return nil
}

func writeNode(w io.Writer, n types.TabNode, depth int, withCandidates bool) {
	indent := strings.Repeat("  ", depth)
	marker := ""
	if n.Active {
		marker = " *"
	}
	count := n.Count()
	if n.Kind == types.MergedLeafNode {
		count = len(n.Candidates)
	}
	fmt.Fprintf(w, "%s%s (%d)%s\n", indent, n.Label, count, marker)
	for _, c := range n.Children {
		writeNode(w, c, depth+1, withCandidates)
	}
	if withCandidates && n.IsLeaf() {
		for _, c := range n.Candidates {
			fmt.Fprintf(w, "%s  - %s\n", indent, c.Name())
		}
	}
}
