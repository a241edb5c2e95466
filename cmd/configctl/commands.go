package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/MKhiriev/go-conf-keeper/internal/adapter"
	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/service"
	"github.com/MKhiriev/go-conf-keeper/models"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// tokenEnv names the environment variable read when --token is not given.
const tokenEnv = "CONFIGCTL_TOKEN"

// dependencies are the constructors the commands call lazily, so that a
// command only needs the settings it uses.
type dependencies struct {
	loadConfig func() (*config.StructuredConfig, error)
	newAdapter func(cfg config.Adapter) (adapter.ConfigServerAdapter, error)
	newAuth    func(cfg config.App) service.AuthService
	logger     *logger.Logger
}

type rootOptions struct {
	server string
	token  string
}

func newRootCommand(deps dependencies) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "configctl",
		Short:         "Inspect and update a running configuration server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.server, "server", "s", "", "server base URL (default from ADAPTER_BASE_URL)")
	root.PersistentFlags().StringVarP(&opts.token, "token", "t", "", "admin bearer token (default from "+tokenEnv+")")

	root.AddCommand(
		newGetCommand(deps, opts),
		newSetCommand(deps, opts),
		newIdentifyCommand(deps, opts),
		newTokenCommand(deps),
		newVersionCommand(deps, opts),
	)

	return root
}

// connect loads the client configuration, applies the flag overrides and
// returns an adapter carrying the admin token, if any.
func connect(deps dependencies, opts *rootOptions) (adapter.ConfigServerAdapter, error) {
	cfg, err := deps.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if opts.server != "" {
		cfg.Adapter.BaseURL = opts.server
	}

	a, err := deps.newAdapter(cfg.Adapter)
	if err != nil {
		return nil, err
	}

	token := opts.token
	if token == "" {
		token = os.Getenv(tokenEnv)
	}
	if token != "" {
		a.SetToken(token)
	}

	return a, nil
}

func newGetCommand(deps dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [path]",
		Short: "Print the live configuration, or the value at a dotted path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(deps, opts)
			if err != nil {
				return err
			}

			doc, etag, err := a.GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			if etag != "" {
				deps.logger.Debug().Str("etag", etag).Msg("configuration fetched")
			}

			if len(args) == 0 {
				return printJSON(cmd.OutOrStdout(), doc)
			}

			value, ok := doc.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errPathNotFound, args[0])
			}
			return printJSON(cmd.OutOrStdout(), value)
		},
	}
}

func newSetCommand(deps dependencies, opts *rootOptions) *cobra.Command {
	var ifMatch string

	cmd := &cobra.Command{
		Use:   "set <json|->",
		Short: "Deep-merge a partial JSON document into the live configuration",
		Example: `  configctl set '{"register":{"requireCaptcha":false}}'
  cat patch.json | configctl set -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readArgument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			partial, err := models.ParseDocument(raw)
			if err != nil {
				return err
			}
			if len(partial) == 0 {
				return errEmptyPatch
			}

			a, err := connect(deps, opts)
			if err != nil {
				return err
			}

			if err = a.PatchConfig(cmd.Context(), partial, ifMatch); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated: %s\n", strings.Join(sortedKeys(partial), ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&ifMatch, "if-match", "", "only apply when the server ETag matches")

	return cmd
}

func newIdentifyCommand(deps dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "identify <file|->",
		Short: "Validate an IDENTIFY payload against the gateway schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readFile(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			a, err := connect(deps, opts)
			if err != nil {
				return err
			}

			coerced, err := a.Identify(cmd.Context(), raw)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), coerced)
		},
	}
}

func newTokenCommand(deps dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "token <operator>",
		Short: "Mint an admin token locally with APP_TOKEN_SIGN_KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.loadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if err = cfg.ValidateOperator(); err != nil {
				return err
			}

			token, err := deps.newAuth(cfg.App).CreateToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token.String())
			return nil
		},
	}
}

func newVersionCommand(deps dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(deps, opts)
			if err != nil {
				return err
			}

			version, err := a.GetVersion(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

// readArgument returns arg itself, or stdin when arg is "-".
func readArgument(stdin io.Reader, arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(stdin)
	}
	return []byte(arg), nil
}

// readFile returns the content of path, or stdin when path is "-".
func readFile(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func printJSON(w io.Writer, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(raw))
	return err
}

func sortedKeys(doc models.Document) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
