package cli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/requestnetwork/request-api-go/pkg/cli/internal/output"
	"github.com/requestnetwork/request-api-go/pkg/config"
	"github.com/requestnetwork/request-api-go/pkg/util"
	"github.com/requestnetwork/request-api-go/pkg/validation"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create reqctl configuration",
}

// ConfigShowOutput is the JSON form of `config show`.
type ConfigShowOutput struct {
	Config     *config.Config    `json:"config"`
	Validation validation.Config `json:"validation"`
	Sources    map[string]string `json:"sources"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration and where each value came from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		shown := maskedConfig(cfg)
		out := ConfigShowOutput{Config: shown, Validation: cfg.RuntimeValidation(), Sources: cfg.Sources}

		w := cmd.OutOrStdout()
		return printResult(w, out, func() {
			tw := output.Table(w)
			fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
			rows := []struct{ key, value string }{
				{"baseUrl", shown.BaseURL},
				{"apiKey", shown.APIKey},
				{"clientId", shown.ClientID},
				{"origin", shown.Origin},
				{"timeout", fmt.Sprintf("%ds", int(cfg.TimeoutDuration().Seconds()))},
				{"validation", out.Validation.String()},
				{"logLevel", shown.LogLevel},
				{"logFormat", shown.LogFormat},
				{"schemaDir", shown.SchemaDir},
			}
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.key, orDash(r.value), orDash(cfg.Sources[r.key]))
			}
			_ = tw.Flush()
		})
	},
}

// maskedConfig returns a copy of cfg with credentials masked.
func maskedConfig(cfg *config.Config) *config.Config {
	c := *cfg
	if c.APIKey != "" {
		c.APIKey = util.MaskSecret(c.APIKey)
	}
	return &c
}

var (
	initGlobal bool
	initForce  bool
	initAPIKey string
	initClient string
	initOrigin string
	initURL    string
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .requestrc.yaml (or the global config with --global)",
	Long: `Create a reqctl config file. Without --api-key or --client-id an
interactive form asks for the values.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := initPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if !cmd.Flags().Changed("api-key") && !cmd.Flags().Changed("client-id") {
			if err := runInitForm(); err != nil {
				return err
			}
		}

		cfg := &config.Config{
			BaseURL:  initURL,
			APIKey:   initAPIKey,
			ClientID: initClient,
			Origin:   initOrigin,
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.SaveFile(path, cfg); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		return printResult(w, map[string]string{"path": path}, func() {
			fmt.Fprintf(w, "Wrote %s\n", path)
		})
	},
}

func initPath() (string, error) {
	if initGlobal {
		paths := config.GlobalConfigSearchPaths()
		if len(paths) == 0 {
			return "", errors.New("no user config directory available")
		}
		return paths[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, config.LocalConfigFileNames[0]), nil
}

func runInitForm() error {
	var authMode string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API base URL").
				Placeholder(config.DefaultBaseURL).
				Value(&initURL).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					u, err := url.Parse(s)
					if err != nil || u.Host == "" {
						return errors.New("enter an http or https URL")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Authentication").
				Options(
					huh.NewOption("API key (server side)", "apiKey"),
					huh.NewOption("Client id (browser or app)", "clientId"),
				).
				Value(&authMode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Value(&initAPIKey).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("API key is required")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return authMode != "apiKey" }),
		huh.NewGroup(
			huh.NewInput().
				Title("Client id").
				Value(&initClient).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("client id is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Origin").
				Placeholder("https://shop.example").
				Value(&initOrigin),
		).WithHideFunc(func() bool { return authMode != "clientId" }),
	)
	return form.Run()
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&initGlobal, "global", false, "Write the global config instead of .requestrc.yaml")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
	configInitCmd.Flags().StringVar(&initAPIKey, "api-key", "", "API key to store")
	configInitCmd.Flags().StringVar(&initClient, "client-id", "", "Client id to store")
	configInitCmd.Flags().StringVar(&initOrigin, "origin", "", "Origin sent with the client id")
	configInitCmd.Flags().StringVar(&initURL, "api-url", "", "API base URL to store")
}
