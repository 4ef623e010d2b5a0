// Package config resolves the service configuration from defaults, an
// optional YAML or JSON file, command-line flags and environment variables,
// in that order of increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address is the HTTP listen address (ip:port).
	Address string `yaml:"server_address"`

	// CORSOrigin is the browser origin allowed to call the API. Empty
	// allows any origin.
	CORSOrigin string `yaml:"cors_origin"`

	// StaticDir is served for every path that is not an API route.
	StaticDir string `yaml:"static_dir"`

	// DatabaseDSN enables the optional Postgres schema and health check.
	DatabaseDSN string `yaml:"database_dsn"`

	// GRPCAddress enables the gRPC server when set.
	GRPCAddress string `yaml:"grpc_address"`

	EnablePprof bool `yaml:"enable_pprof"`
	EnableHTTPS bool `yaml:"enable_https"`

	// TLSHosts are the domains certificates are requested for when HTTPS
	// is enabled.
	TLSHosts []string `yaml:"tls_hosts"`

	LogLevel string `yaml:"log_level"`

	// Provider selects the model backend: "gemini" or "openai".
	Provider    string  `yaml:"llm_provider"`
	Model       string  `yaml:"llm_model"`
	Temperature float64 `yaml:"llm_temperature"`

	// ExcludeDirs are path prefixes the fetcher never follows.
	ExcludeDirs []string `yaml:"exclude_dirs"`
	WrapWidth   int      `yaml:"wrap_width"`

	// TypedErrors maps failures to 400/502/504 instead of a uniform 500.
	TypedErrors bool `yaml:"typed_errors"`

	// RequestTimeout bounds a generation. Zero means no bound.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Secrets are only read from the environment.
	GoogleAPIKey  string `yaml:"-"`
	OpenAIAPIKey  string `yaml:"-"`
	OpenAIBaseURL string `yaml:"-"`

	// Config is the path of the file the options were loaded from.
	Config string `yaml:"-"`
}

// APIKey returns the key for the configured provider.
func (o *Options) APIKey() string {
	if strings.EqualFold(o.Provider, "openai") {
		return o.OpenAIAPIKey
	}
	return o.GoogleAPIKey
}

func defaults() *Options {
	return &Options{
		Address:     ":3000",
		StaticDir:   "files",
		LogLevel:    "info",
		Provider:    "gemini",
		Temperature: 0.9,
		ExcludeDirs: []string{"/docs/api/"},
		WrapWidth:   130,
	}
}

// stringList is a comma separated flag value.
type stringList struct {
	dst *[]string
}

func (s stringList) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}

func (s stringList) Set(v string) error {
	*s.dst = splitList(v)
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func newFlagSet(o *Options) *flag.FlagSet {
	fs := flag.NewFlagSet("generator", flag.ContinueOnError)

	fs.StringVar(&o.Address, "a", o.Address, "run on ip:port server")
	fs.StringVar(&o.CORSOrigin, "o", o.CORSOrigin, "allowed CORS origin")
	fs.StringVar(&o.StaticDir, "f", o.StaticDir, "static files directory")
	fs.StringVar(&o.DatabaseDSN, "d", o.DatabaseDSN, "db address")
	fs.StringVar(&o.GRPCAddress, "g", o.GRPCAddress, "gRPC listen address")
	fs.BoolVar(&o.EnablePprof, "p", o.EnablePprof, "enable pprof")
	fs.BoolVar(&o.EnableHTTPS, "s", o.EnableHTTPS, "enable https")
	fs.Var(stringList{&o.TLSHosts}, "hosts", "comma separated domains served over https")
	fs.StringVar(&o.LogLevel, "l", o.LogLevel, "log level")
	fs.StringVar(&o.Provider, "provider", o.Provider, "llm provider: gemini or openai")
	fs.StringVar(&o.Model, "m", o.Model, "llm model name")
	fs.Float64Var(&o.Temperature, "t", o.Temperature, "llm temperature")
	fs.Var(stringList{&o.ExcludeDirs}, "x", "comma separated path prefixes to skip while crawling")
	fs.IntVar(&o.WrapWidth, "w", o.WrapWidth, "wrap fetched text at this column")
	fs.BoolVar(&o.TypedErrors, "e", o.TypedErrors, "report typed error statuses")
	fs.DurationVar(&o.RequestTimeout, "timeout", o.RequestTimeout, "generation timeout, 0 for none")
	fs.StringVar(&o.Config, "c", o.Config, "path to a YAML or JSON config file")

	return fs
}

// Parse loads a .env file when present and resolves the options from the
// process arguments and environment. Invalid configuration exits the process.
func Parse() *Options {
	_ = gotenv.Load()

	opts, err := ParseArgs(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return opts
}

// ParseArgs resolves the options from args and getenv.
func ParseArgs(args []string, getenv func(string) string) (*Options, error) {
	// first pass only locates the config file
	probe := defaults()
	probeFlags := newFlagSet(probe)
	probeFlags.SetOutput(io.Discard)
	if err := probeFlags.Parse(args); err != nil {
		return nil, err
	}

	path := probe.Config
	if v := getenv("CONFIG"); v != "" {
		path = v
	}

	opts := defaults()
	if path != "" {
		if err := loadFile(path, opts); err != nil {
			return nil, err
		}
	}

	if err := newFlagSet(opts).Parse(args); err != nil {
		return nil, err
	}
	opts.Config = path

	if err := applyEnv(opts, getenv); err != nil {
		return nil, err
	}

	return opts, nil
}

func loadFile(path string, o *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	// JSON is a subset of YAML, so one decoder serves both formats.
	if err := yaml.Unmarshal(data, o); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}

func applyEnv(o *Options, getenv func(string) string) error {
	str := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v := getenv(key); v != "" {
				*dst = v
				return
			}
		}
	}

	if port := getenv("PORT"); port != "" {
		o.Address = ":" + port
	}
	str(&o.Address, "SERVER_ADDRESS")
	str(&o.CORSOrigin, "CORS_ORIGIN")
	str(&o.StaticDir, "STATIC_DIR")
	str(&o.DatabaseDSN, "DATABASE_DSN", "DATABASE_URL")
	str(&o.GRPCAddress, "GRPC_ADDRESS")
	str(&o.LogLevel, "LOG_LEVEL")
	str(&o.Provider, "LLM_PROVIDER")
	str(&o.Model, "LLM_MODEL")
	str(&o.GoogleAPIKey, "GOOGLE_API_KEY")
	str(&o.OpenAIAPIKey, "OPENAI_API_KEY")
	str(&o.OpenAIBaseURL, "OPENAI_BASE_URL")

	if v := getenv("EXCLUDE_DIRS"); v != "" {
		o.ExcludeDirs = splitList(v)
	}
	if v := getenv("TLS_HOSTS"); v != "" {
		o.TLSHosts = splitList(v)
	}

	for key, dst := range map[string]*bool{
		"ENABLE_PPROF": &o.EnablePprof,
		"ENABLE_HTTPS": &o.EnableHTTPS,
		"TYPED_ERRORS": &o.TypedErrors,
	} {
		if v := getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	if v := getenv("LLM_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LLM_TEMPERATURE: %w", err)
		}
		o.Temperature = f
	}

	if v := getenv("WRAP_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WRAP_WIDTH: %w", err)
		}
		o.WrapWidth = n
	}

	if v := getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		o.RequestTimeout = d
	}

	return nil
}
