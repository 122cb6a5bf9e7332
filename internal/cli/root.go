package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/canzero/canzero-appdata/internal/appdata"
	"github.com/canzero/canzero-appdata/internal/logging"
	"github.com/canzero/canzero-appdata/internal/telemetry"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "CANZERO"

const (
	keyRoot        = "appdata-root"
	keyLogLevel    = "log-level"
	keyOtelTraces  = "otel-traces"
	keyOtelMetrics = "otel-metrics"
)

// BuildInfo carries link-time version metadata.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// PromptFunc asks the user for a config path. ok is false when the user
// backed out without choosing.
type PromptFunc func(ctx context.Context, current string) (path string, ok bool, err error)

type app struct {
	v       *viper.Viper
	streams Streams
	theme   theme

	log *logrus.Logger
	tel *telemetry.Provider

	interactive func() bool
	prompt      PromptFunc
}

// Execute runs the command tree with args and releases telemetry afterwards.
func Execute(ctx context.Context, args []string, streams Streams, build BuildInfo) error {
	a := newApp(streams)
	cmd := a.rootCommand(build)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if shutdownErr := a.shutdown(context.WithoutCancel(ctx)); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	return err
}

func newApp(streams Streams) *app {
	if streams.In == nil {
		streams.In = os.Stdin
	}
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.ErrOut == nil {
		streams.ErrOut = os.Stderr
	}
	a := &app{
		v:       viper.New(),
		streams: streams,
		theme:   newTheme(logging.IsTerminal(streams.Out)),
	}
	a.interactive = func() bool {
		return logging.IsTTY(a.streams.In) && logging.IsTTY(a.streams.Out)
	}
	a.prompt = func(ctx context.Context, current string) (string, bool, error) {
		return runPathPrompt(ctx, a.streams.In, a.streams.Out, a.theme, current)
	}
	return a
}

func (a *app) rootCommand(build BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:           "canzero-appdata",
		Short:         "Inspect and change the persisted CANzero config path",
		Version:       build.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}
	root.SetIn(a.streams.In)
	root.SetOut(a.streams.Out)
	root.SetErr(a.streams.ErrOut)
	root.SetVersionTemplate(versionTemplate(build))

	flags := root.PersistentFlags()
	flags.String("root", "", "storage root holding .canzero/ (default: home directory)")
	flags.String(keyLogLevel, logging.DefaultLevel, "log level (trace, debug, info, warn, error)")
	_ = a.v.BindPFlag(keyRoot, flags.Lookup("root"))
	_ = a.v.BindPFlag(keyLogLevel, flags.Lookup(keyLogLevel))

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	a.v.SetDefault(keyOtelTraces, false)
	a.v.SetDefault(keyOtelMetrics, false)

	root.AddCommand(
		a.showCommand(),
		a.setCommand(),
		a.clearCommand(),
		a.whereCommand(),
	)
	return root
}

func versionTemplate(build BuildInfo) string {
	shortHash := build.Commit
	if len(shortHash) > 7 {
		shortHash = shortHash[:7]
	}
	return fmt.Sprintf("version: {{.Version}}\ngit hash: %s\nbuild date: %s\n", shortHash, build.BuildDate)
}

func (a *app) setup(ctx context.Context) error {
	logger, err := logging.Setup(a.v.GetString(keyLogLevel), a.streams.ErrOut)
	if err != nil {
		return err
	}
	a.log = logger

	tel, err := telemetry.Setup(ctx, telemetry.Config{
		EnableTraces:  a.v.GetBool(keyOtelTraces),
		EnableMetrics: a.v.GetBool(keyOtelMetrics),
		TraceWriter:   a.streams.ErrOut,
	})
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	a.tel = tel
	return nil
}

func (a *app) shutdown(ctx context.Context) error {
	if a.tel == nil {
		return nil
	}
	if a.tel.MetricsEnabled() && a.log != nil {
		totals, err := a.tel.Collect(ctx)
		if err != nil {
			a.log.WithError(err).Warn("collect metrics")
		} else {
			fields := logrus.Fields{}
			for name, value := range totals {
				fields[name] = value
			}
			a.log.WithFields(fields).Info("appdata metrics")
		}
	}
	return a.tel.Shutdown(ctx)
}

// location resolves the storage location. A missing home directory is an
// environment problem the user has to fix, so the error names the overrides.
func (a *app) location() (appdata.Location, error) {
	if root := strings.TrimSpace(a.v.GetString(keyRoot)); root != "" {
		return appdata.NewLocation(root)
	}
	loc, err := appdata.DefaultLocation()
	if errors.Is(err, appdata.ErrNoHomeDir) {
		return appdata.Location{}, fmt.Errorf("pass --root or set %s_APPDATA_ROOT: %w", envPrefix, err)
	}
	return loc, err
}

func (a *app) open(ctx context.Context) (*appdata.AppData, error) {
	loc, err := a.location()
	if err != nil {
		return nil, err
	}
	return appdata.Read(ctx, loc, appdata.WithLogger(a.log))
}
