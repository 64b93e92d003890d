package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version        = "v0.0.0"
	CommitHash     = "dev"
	BuildTimestamp = "1970-01-01T00:00:00Z"
	Builder        = "unknown"
	GithubRepo     = "babs/iconizer"
)

func versionString() string {
	return fmt.Sprintf("iconizer %s-%s", Version, CommitHash)
}

func versionStringLong() string {
	return fmt.Sprintf("iconizer %s-%s (built %s using %s)\nhttps://github.com/%s\n",
		Version, CommitHash, BuildTimestamp, Builder, GithubRepo)
}

// cliFlags holds the raw command-line values.
type cliFlags struct {
	platforms     []string
	all           bool
	combined      bool
	interpolation string
	workers       int
	configFile    string
	logLevel      string
	save          bool
	watch         bool
	version       bool
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}
	cmd := &cobra.Command{
		Use:   "iconizer [flags] <source-image> <destination>",
		Short: "Generate Xcode app icon asset catalogs from a single image",
		Long: `Resizes one source image into every app icon variant required by the
selected platforms (Mac, iPhone, iPad, Watch, Car) and writes them, with their
Contents.json manifests, under <destination>/Iconizer Assets.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	fl := cmd.Flags()
	fl.StringSliceVarP(&f.platforms, "platform", "p", nil, "platform to generate, repeatable or comma separated (env: ICONIZER_PLATFORMS)")
	fl.BoolVar(&f.all, "all", false, "generate every platform")
	fl.BoolVar(&f.combined, "combined", false, "write all platforms into one asset catalog (env: ICONIZER_COMBINED)")
	fl.StringVar(&f.interpolation, "interpolation", "", "resampling: nearest, bilinear, catmullrom, lanczos3 (env: ICONIZER_INTERPOLATION)")
	fl.IntVar(&f.workers, "workers", 0, "parallel resize workers, 0 for one per CPU (env: ICONIZER_WORKERS)")
	fl.StringVar(&f.configFile, "config", "", "config file path, .json or .yaml")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (env: ICONIZER_LOG_LEVEL)")
	fl.BoolVar(&f.save, "save", false, "remember the platform selection and combined mode in the config file")
	fl.BoolVar(&f.watch, "watch", false, "regenerate whenever the source image changes")
	fl.BoolVarP(&f.version, "version", "V", false, "show version and exit")
	return cmd
}

func main() {
	// Optional; a missing .env is not an error.
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, f *cliFlags, args []string) error {
	stdout := cmd.OutOrStdout()
	if f.version {
		fmt.Fprint(stdout, versionStringLong())
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("expected <source-image> <destination>, got %d argument(s)", len(args))
	}
	source, destination := args[0], args[1]

	if f.configFile != "" {
		configPath = f.configFile
	}

	bootLevel := f.logLevel
	if bootLevel == "" {
		bootLevel = os.Getenv("ICONIZER_LOG_LEVEL")
	}
	boot := newLogger(bootLevel, false, cmd.ErrOrStderr())

	cfg := loadConfig(boot)
	applyOverrides(&cfg, flagOverrides(cmd, f), boot)

	logger := newLogger(cfg.LogLevel, cfg.JSONLog, cmd.ErrOrStderr())
	logger.Debug("starting", "version", versionString(), "config", configPath)

	if f.save {
		if err := saveSelection(cfg, boot); err != nil {
			logger.Warn("failed to save preferences", "path", configPath, "error", err)
		} else {
			logger.Info("saved preferences", "path", configPath)
		}
	}

	platforms, _ := parsePlatforms(cfg.Platforms)
	opts := ExportOptions{
		Platforms:   platforms,
		Destination: destination,
		Combined:    cfg.Combined,
	}
	exporter := NewExporter(cfg, logger)

	ctx, stop := signalContext(cmd.Context(), logger)
	defer stop()

	if !f.watch {
		return exportOnce(ctx, exporter, source, opts, stdout)
	}

	w, err := newSourceWatcher(source, defaultWatchDebounce, logger.Named("watch"))
	if err != nil {
		return err
	}
	regenerate := func() {
		if err := exportOnce(ctx, exporter, source, opts, stdout); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("export failed", "error", err)
		}
	}
	regenerate()
	logger.Info("watching for changes, press Ctrl+C to stop", "source", source)
	return w.Run(ctx, regenerate)
}

// flagOverrides collects only the flags the user explicitly set.
func flagOverrides(cmd *cobra.Command, f *cliFlags) overrides {
	var o overrides
	fl := cmd.Flags()
	if f.all {
		o.Platforms = platformNamesOf(allPlatforms())
	} else if fl.Changed("platform") {
		o.Platforms = f.platforms
	}
	if fl.Changed("combined") {
		o.Combined = &f.combined
	}
	o.Interpolation = f.interpolation
	if fl.Changed("workers") {
		o.Workers = &f.workers
	}
	o.LogLevel = f.logLevel
	return o
}

// exportOnce loads the source and runs one full export.
func exportOnce(ctx context.Context, e *Exporter, source string, opts ExportOptions, out io.Writer) error {
	start := time.Now()
	src, err := loadSourceImage(source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingSourceImage, err)
	}

	res, err := e.Export(ctx, src, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s in %s\n", formatSummary(res, opts), formatElapsed(time.Since(start)))
	fmt.Fprint(out, formatProblems(res))
	if !res.OK() {
		return fmt.Errorf("export incomplete: %d %s", len(res.Failures), plural(len(res.Failures), "directory failed", "directories failed"))
	}
	return nil
}

// signalContext returns a context cancelled on interrupt (and SIGTERM on Unix).
func signalContext(parent context.Context, logger hclog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	notifyExtraSignals(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("signal received, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
