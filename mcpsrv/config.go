package mcpsrv

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// EnvPrefix namespaces every MCP server setting read from the environment.
const EnvPrefix = "BALLOTTUI_MCP_"

type Config struct {
	Port               string
	AllowedOrigins     []string
	Stateless          bool
	EnableAdmin        bool
	APIKey             string
	RPS                float64
	Burst              int
	SessionTimeout     time.Duration
	CacheClearInterval time.Duration
}

func LoadConfig() Config {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) Config {
	env := envReader{getenv: getenv}

	port := strings.TrimSpace(getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	cfg := Config{
		Port:               port,
		AllowedOrigins:     env.list("ALLOWED_ORIGINS"),
		Stateless:          env.boolean("STATELESS", false),
		EnableAdmin:        env.boolean("ENABLE_ADMIN", false),
		APIKey:             env.str("API_KEY"),
		RPS:                env.float("RPS", 2),
		Burst:              env.integer("BURST", 5),
		SessionTimeout:     env.duration("SESSION_TIMEOUT", 15*time.Minute),
		CacheClearInterval: env.duration("CACHE_CLEAR_INTERVAL", 10*time.Minute),
	}

	if cfg.RPS <= 0 {
		cfg.RPS = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	return cfg
}

func StreamableOptions(cfg Config) *mcp.StreamableHTTPOptions {
	return &mcp.StreamableHTTPOptions{
		Stateless:      cfg.Stateless,
		SessionTimeout: cfg.SessionTimeout,
	}
}

// envReader parses prefixed variables, falling back on empty or unparsable values.
type envReader struct {
	getenv func(string) string
}

func (e envReader) str(name string) string {
	return strings.TrimSpace(e.getenv(EnvPrefix + name))
}

func (e envReader) list(name string) []string {
	parts := strings.Split(e.str(name), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (e envReader) boolean(name string, fallback bool) bool {
	b, err := strconv.ParseBool(e.str(name))
	if err != nil {
		return fallback
	}
	return b
}

func (e envReader) integer(name string, fallback int) int {
	n, err := strconv.Atoi(e.str(name))
	if err != nil {
		return fallback
	}
	return n
}

func (e envReader) float(name string, fallback float64) float64 {
	n, err := strconv.ParseFloat(e.str(name), 64)
	if err != nil {
		return fallback
	}
	return n
}

func (e envReader) duration(name string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(e.str(name))
	if err != nil {
		return fallback
	}
	return d
}
