package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/requestnetwork/request-api-go/pkg/client"
	"github.com/requestnetwork/request-api-go/pkg/config"
	"github.com/requestnetwork/request-api-go/pkg/logging"
	"github.com/requestnetwork/request-api-go/pkg/metrics"
	"github.com/requestnetwork/request-api-go/pkg/transport"
	"github.com/requestnetwork/request-api-go/pkg/validation"
)

var (
	// Persistent flags available to all subcommands
	configFile  string
	apiURL      string
	apiKey      string
	clientID    string
	jsonOutput  bool
	query       string
	logLevel    string
	validateArg string
	schemaDir   string
	showMetrics bool

	// callMetrics is set by newClient when --metrics is given.
	callMetrics *metrics.Registry

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// errSilent marks failures whose details were already printed.
var errSilent = errors.New("")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reqctl",
	Short: "reqctl talks to the Request Network API",
	Long: `reqctl creates payment requests, checks their status and fetches what is
needed to pay them, using the Request Network API.

Settings come from flags, REQUEST_* environment variables, a local
.requestrc.yaml, or the global config file, in that order of precedence.
Request and response bodies are validated against the API's schemas unless
--validate says otherwise.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default: .requestrc.yaml, then the global config)")
	pf.StringVar(&apiURL, "api-url", "", "API base URL (default: "+config.DefaultBaseURL+")")
	pf.StringVar(&apiKey, "api-key", "", "API key")
	pf.StringVar(&clientID, "client-id", "", "Client id, used instead of an API key")
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVarP(&query, "query", "q", "", "JSONPath applied to the JSON output, e.g. $.requestId")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&validateArg, "validate", "", "Runtime validation: true, false, or a list of requests,responses,errors")
	pf.Lookup("validate").NoOptDefVal = "all"
	pf.StringVar(&schemaDir, "schema-dir", "", "Directory of extra *.schema.json files")
	pf.BoolVar(&showMetrics, "metrics", false, "Print call metrics to stderr when the command finishes")
}

// Execute runs the root command with os.Args.
func Execute() error {
	return rootCmd.Execute()
}

// Main runs reqctl and returns the process exit code.
func Main() int {
	err := Execute()
	if callMetrics != nil {
		_ = callMetrics.WriteText(os.Stderr)
	}
	if err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// loadConfig resolves the configuration, with the persistent flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := &config.Config{
		BaseURL:   apiURL,
		APIKey:    apiKey,
		ClientID:  clientID,
		LogLevel:  logLevel,
		SchemaDir: schemaDir,
	}
	if cmd.Flags().Changed("validate") {
		o, err := validation.ParseFlags(validateArg)
		if err != nil {
			return nil, fmt.Errorf("--validate: %w", err)
		}
		flags.Validation = o
	}

	cfg, err := config.LoadAll(config.LoadOptions{File: configFile, Flags: flags})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newClient builds an SDK client from the resolved configuration.
func newClient(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	opts := []client.Option{
		client.WithLogger(logger),
		client.WithTransportOptions(transport.WithUserAgent("reqctl/" + Version)),
	}
	if showMetrics {
		callMetrics = metrics.NewRegistry()
		opts = append(opts, client.WithMetrics(metrics.NewCallMetrics(callMetrics)))
	}
	return client.FromConfig(cfg, opts...)
}

// printResult outputs a single operation result.
//
// Contract: when --json or --query is active, ONLY the JSON encoding of data
// is written to stdout. textFn is called only in text mode.
func printResult(w io.Writer, data any, textFn func()) error {
	if query != "" {
		return queryJSON(w, data)
	}
	if jsonOutput {
		return writeJSON(w, data)
	}
	textFn()
	return nil
}
