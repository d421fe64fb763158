package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nae2121/ISC-onlinejudge/internal/assets"
	"github.com/nae2121/ISC-onlinejudge/internal/catalog"
	"github.com/nae2121/ISC-onlinejudge/internal/complete"
	"github.com/nae2121/ISC-onlinejudge/internal/config"
	"github.com/nae2121/ISC-onlinejudge/internal/editor"
	"github.com/nae2121/ISC-onlinejudge/internal/judge"
	"github.com/nae2121/ISC-onlinejudge/internal/prefs"
	"github.com/nae2121/ISC-onlinejudge/internal/run"
	"github.com/nae2121/ISC-onlinejudge/internal/storage"
)

const runShortcut = "ctrl+enter"

// consoleSink maps the controller's UI side effects onto the terminal:
// status lines to stderr, program output to stdout.
type consoleSink struct{}

func (consoleSink) SetBusy(bool) {}

func (consoleSink) SetStatus(text string) {
	fmt.Fprintln(os.Stderr, text)
}

func (consoleSink) SetOutput(text string) {
	fmt.Fprintln(os.Stdout, text)
}

func main() {
	var (
		filePath    = flag.String("file", "", "source file to execute (defaults to stdin)")
		stdinPath   = flag.String("stdin", "", "file passed to the program's standard input")
		targetFlag  = flag.Int("target", -1, "execution target id (defaults to the saved preference)")
		listTargets = flag.Bool("languages", false, "list available execution targets and exit")
	)
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := realMain(ctx, cfg, logger, *filePath, *stdinPath, *targetFlag, *listTargets); err != nil {
		os.Exit(1)
	}
}

func realMain(ctx context.Context, cfg config.Config, logger *zap.Logger, filePath, stdinPath string, targetFlag int, listTargets bool) error {
	// Remote editor modules must be in place before anything that
	// depends on them initializes; a load failure is fatal here.
	if cfg.Assets.BaseURL != "" {
		loader := assets.NewLoader(logger)
		for _, id := range []string{"editor-core", "editor-language-tools"} {
			res := assets.Resource{ID: id, URL: cfg.Assets.BaseURL + "/" + id + ".js"}
			if err := loader.EnsureLoaded(ctx, res); err != nil {
				logger.Error("editor module load failed", zap.Error(err))
				fmt.Fprintf(os.Stderr, "cannot start: %v\n", err)
				return err
			}
		}
	}

	historyKV, prefsKV := openStores(ctx, cfg, logger)

	prefsStore := prefs.NewStore(prefsKV, logger)
	settings := prefsStore.Load(ctx)

	surface := editor.NewHeadless()
	surface.SetTheme(settings.Theme)
	surface.SetFontSize(settings.FontSize)
	surface.SetCompleter(complete.NewEngine())

	client := judge.NewClient(judge.ClientConfig{
		BaseURL:        cfg.Backend.BaseURL,
		AuthToken:      cfg.Backend.AuthToken,
		RequestTimeout: cfg.Backend.RequestTimeout,
	}, logger)

	targets := catalog.NewService(client, logger)
	if err := targets.Refresh(ctx); err != nil {
		// Keep whatever was shown before; here that is an empty picker.
		logger.Warn("language catalog unavailable", zap.Error(err))
	}
	if settings.SelectedTargetID != nil {
		if target, ok := targets.Select(*settings.SelectedTargetID); ok {
			surface.SetMode(target.SyntaxMode)
		}
	}

	if listTargets {
		for _, target := range targets.Targets() {
			fmt.Printf("%5d  %-40s %s\n", target.ID, target.DisplayName, target.SyntaxMode)
		}
		return nil
	}

	if targetFlag >= 0 {
		if target, ok := targets.Select(targetFlag); ok {
			surface.SetMode(target.SyntaxMode)
			id := target.ID
			settings.SelectedTargetID = &id
			prefsStore.Save(ctx, settings)
		} else {
			logger.Warn("requested target not in catalog, submitting anyway",
				zap.Int("target", targetFlag))
		}
	}

	source, err := readInput(filePath)
	if err != nil {
		logger.Error("read source", zap.Error(err))
		return err
	}
	surface.SetValue(string(source))

	stdin := ""
	if stdinPath != "" {
		raw, err := os.ReadFile(stdinPath)
		if err != nil {
			logger.Error("read stdin file", zap.Error(err))
			return err
		}
		stdin = string(raw)
	}

	controller := run.NewController(client, consoleSink{}, run.NewHistoryStore(historyKV, logger), run.Config{
		Interval:         cfg.Poll.Interval,
		MaxAttempts:      cfg.Poll.MaxAttempts,
		RunningStatusMax: cfg.Poll.RunningStatusMax,
		DefaultTargetID:  cfg.DefaultTargetID,
	}, logger)

	targetID := targetFlag
	if targetID < 0 {
		if selected, ok := targets.Selected(); ok {
			targetID = selected.ID
		}
	}

	var outcome run.Outcome
	var runErr error
	surface.RegisterShortcut(runShortcut, func() {
		outcome, runErr = controller.Run(ctx, judge.Submission{
			SourceText: surface.Value(),
			Stdin:      stdin,
			TargetID:   targetID,
		})
	})
	surface.Trigger(runShortcut)

	if runErr != nil {
		return runErr
	}
	if outcome.State != run.StateDone {
		return fmt.Errorf("run ended in state %s", outcome.State)
	}
	return nil
}

// openStores picks the history and preference backends: Redis when
// configured and reachable, otherwise in-memory history and file-backed
// preferences. Storage problems are never fatal.
func openStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (historyKV, prefsKV storage.KV) {
	prefsKV = storage.NewFileStore(cfg.Prefs.Dir)
	historyKV = storage.NewMemoryStore()

	if cfg.Redis.Addr == "" {
		return historyKV, prefsKV
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, falling back to local stores", zap.Error(err))
		return historyKV, prefsKV
	}

	store := storage.NewRedisStore(rdb)
	return store, store
}

func readInput(filePath string) ([]byte, error) {
	if filePath == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filePath)
}
