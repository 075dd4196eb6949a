// Package config loads the directory settings shared by the TUI and the
// MCP servers: which feed to read and how to group its roles.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/qyinm/ballottui/tabtree"
	"github.com/qyinm/ballottui/types"
	"gopkg.in/yaml.v3"
)

// Election is the directory configuration. Role lists are pipe-delimited,
// exactly as they are stored by the elections admin.
type Election struct {
	Results         bool   `yaml:"results"`
	ElectionID      string `yaml:"election_id" validate:"required_if=Results true"`
	StudentOfficers string `yaml:"student_officers"`
	NetworkOfficers string `yaml:"network_officers"`
	AcademicGroups  string `yaml:"academic_groups"`
	ActiveID        string `yaml:"active_id" validate:"omitempty,category"`

	CandidatesURL string `yaml:"candidates_url" validate:"omitempty,url"`
	ResultsURL    string `yaml:"results_url" validate:"omitempty,url"`

	LogFile string `yaml:"log_file"`
	Debug   bool   `yaml:"debug"`
}

// Default returns the settings used when nothing is configured.
func Default() Election {
	return Election{ActiveID: tabtree.DefaultActiveID}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Election, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Env variable names read by ApplyEnv.
const (
	EnvResults         = "BALLOTTUI_RESULTS"
	EnvElectionID      = "BALLOTTUI_ELECTION_ID"
	EnvStudentOfficers = "BALLOTTUI_STUDENT_OFFICERS"
	EnvNetworkOfficers = "BALLOTTUI_NETWORK_OFFICERS"
	EnvAcademicGroups  = "BALLOTTUI_ACADEMIC_GROUPS"
	EnvActiveID        = "BALLOTTUI_ACTIVE_ID"
	EnvCandidatesURL   = "BALLOTTUI_CANDIDATES_URL"
	EnvResultsURL      = "BALLOTTUI_RESULTS_URL"
	EnvLogFile         = "BALLOTTUI_LOG_FILE"
	EnvDebug           = "BALLOTTUI_DEBUG"
)

// ApplyEnv overrides fields from BALLOTTUI_* variables that are set.
func (e *Election) ApplyEnv() {
	e.Results = envBool(EnvResults, e.Results)
	e.ElectionID = envString(EnvElectionID, e.ElectionID)
	e.StudentOfficers = envString(EnvStudentOfficers, e.StudentOfficers)
	e.NetworkOfficers = envString(EnvNetworkOfficers, e.NetworkOfficers)
	e.AcademicGroups = envString(EnvAcademicGroups, e.AcademicGroups)
	e.ActiveID = envString(EnvActiveID, e.ActiveID)
	e.CandidatesURL = envString(EnvCandidatesURL, e.CandidatesURL)
	e.ResultsURL = envString(EnvResultsURL, e.ResultsURL)
	e.LogFile = envString(EnvLogFile, e.LogFile)
	e.Debug = envBool(EnvDebug, e.Debug)
}

// Validate checks settings that would make every fetch fail.
func (e Election) Validate() error {
	e.ElectionID = strings.TrimSpace(e.ElectionID)
	e.ActiveID = strings.TrimSpace(e.ActiveID)
	e.CandidatesURL = strings.TrimSpace(e.CandidatesURL)
	e.ResultsURL = strings.TrimSpace(e.ResultsURL)

	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config error: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New("config error: " + strings.Join(msgs, "; "))
}

// TabOptions converts the settings for tabtree.NewConfig.
func (e Election) TabOptions() tabtree.Options {
	return tabtree.Options{
		Results:         e.Results,
		ActiveID:        e.ActiveID,
		StudentOfficers: e.StudentOfficers,
		NetworkOfficers: e.NetworkOfficers,
		AcademicGroups:  e.AcademicGroups,
	}
}

// Request returns the feed request selected by the settings.
func (e Election) Request() types.Request {
	mode := types.Listing
	if e.Results {
		mode = types.Results
	}
	return types.Request{Mode: mode, ElectionID: strings.TrimSpace(e.ElectionID)}
}

var validate = newValidator()

// newValidator reports fields by their YAML names and knows the category
// codes accepted by active_id.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := types.ParseCategory(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}
	return v
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required_if":
		return fmt.Sprintf("'%s' is required in results mode", fe.Field())
	case "category":
		return fmt.Sprintf("unknown '%s' %q; expected SO|NO|NUS|ACADEMIC", fe.Field(), fe.Value())
	case "url":
		return fmt.Sprintf("'%s' must be an absolute URL, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("'%s' failed %s", fe.Field(), fe.Tag())
	}
}

func envString(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(v)
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
