package cli

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/framegrid/internal/app"
	"github.com/specialistvlad/framegrid/internal/publish"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type flags struct {
	network   string
	catalogs  []string
	export    string
	logFormat string
	logLevel  string
	output    string

	lenient            bool
	allowIncomplete    bool
	disableTransformer bool

	publishURL       string
	publishNamespace string
	publishEvent     string
	publishAckEvent  string
	publishTimeout   time.Duration
	insecure         bool
}

func newRootCommand(f *flags, onRun func(path string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "framegrid [flags] [NETWORK_PATH]",
		Short: "Assign coordinate frames and transformation chains to a component network",
		Long: `FrameGrid - reads a network of components and a catalog of frame transforms,
assigns a coordinate frame to every annotated port and finds a chain of static
and dynamic transforms for every transformation a component needs, inserting
the producer components those chains require.

NETWORK_PATH is a single .hcl file or a directory containing .hcl files.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.network
			if path == "" && len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				slog.Debug("No network path provided, printing usage and exiting.")
				return cmd.Usage()
			}
			return onRun(path)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.network, "network", "n", "", "Path to the network file or directory.")
	fs.StringArrayVarP(&f.catalogs, "catalog", "c", nil, "Path to a transform catalog file or directory (.hcl, .yaml, .yml). Repeatable.")
	fs.StringVar(&f.export, "export-catalog", "", "Write the merged transform catalog to this file as YAML.")
	fs.StringVar(&f.logFormat, "log-format", "json", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.StringVarP(&f.output, "output", "o", app.FormatYAML, "Result format. Options: 'yaml' or 'json'.")
	fs.BoolVar(&f.lenient, "lenient", false, "Skip transformations that cannot be resolved instead of failing the build.")
	fs.BoolVar(&f.allowIncomplete, "allow-incomplete", false, "Write the result even if the network has unresolved transformations.")
	fs.BoolVar(&f.disableTransformer, "disable-transformer", false, "Skip frame assignment and chain resolution altogether.")
	fs.StringVar(&f.publishURL, "publish-url", "", "Socket.io URL to publish the configuration state to. Empty disables publishing.")
	fs.StringVar(&f.publishNamespace, "publish-namespace", "/", "Socket.io namespace to publish on.")
	fs.StringVar(&f.publishEvent, "publish-event", publish.DefaultEvent, "Event carrying the configuration state.")
	fs.StringVar(&f.publishAckEvent, "publish-ack-event", "", "Event the server acknowledges with. Empty does not wait.")
	fs.DurationVar(&f.publishTimeout, "publish-timeout", publish.DefaultTimeout, "Timeout for connecting and acknowledgement.")
	fs.BoolVar(&f.insecure, "insecure-skip-verify", false, "Skip TLS certificate verification when publishing.")
	return cmd
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	f := &flags{}
	var config *app.Config
	cmd := newRootCommand(f, func(path string) error {
		cfg, err := f.config(path)
		if err != nil {
			return err
		}
		config = cfg
		return nil
	})
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if config == nil {
		// Help was requested or no network was given.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "network", config.NetworkPath)
	return config, false, nil
}

func (f *flags) config(path string) (*app.Config, error) {
	logFormat := strings.ToLower(f.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(f.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if f.publishURL == "" && f.publishAckEvent != "" {
		return nil, &ExitError{Code: 2, Message: "publish-ack-event needs publish-url"}
	}

	return app.NewConfig(app.Config{
		NetworkPath:        path,
		CatalogPaths:       f.catalogs,
		ExportCatalog:      f.export,
		LogFormat:          logFormat,
		LogLevel:           logLevel,
		Output:             strings.ToLower(f.output),
		Lenient:            f.lenient,
		AllowIncomplete:    f.allowIncomplete,
		DisableTransformer: f.disableTransformer,
		Publish: publish.Config{
			URL:                f.publishURL,
			Namespace:          f.publishNamespace,
			Event:              f.publishEvent,
			AckEvent:           f.publishAckEvent,
			Timeout:            f.publishTimeout,
			InsecureSkipVerify: f.insecure,
		},
	})
}
