package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-lichvannien/internal/config"
	"github.com/tartampluch/go-lichvannien/internal/gemini"
	"github.com/tartampluch/go-lichvannien/internal/server"
	"github.com/tartampluch/go-lichvannien/internal/ui"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	storeKey := flag.Bool(config.FlagStoreKey, false, config.FlagDescStoreKey)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	if *storeKey {
		if err := promptAndStoreKey(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return config.ExitCodeError
		}
		fmt.Println(config.MsgKeyStored)
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		if errors.Is(err, config.ErrMissingCredential) {
			fmt.Fprintln(os.Stderr, config.ErrCredentialMissing)
		}
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run resolves the credential, wires the Gemini source, the feed server and
// the UI, then blocks in the UI loop.
func run(ctx context.Context) error {
	key, source, err := config.ResolveAPIKey(os.LookupEnv, keyring.Get)
	if err != nil {
		return err
	}
	if source == config.KeyringService {
		slog.Info(config.MsgKeyFromRing, config.LogKeyComponent, config.CompMain)
	} else {
		slog.Info(config.MsgKeyFromEnv,
			config.LogKeyComponent, config.CompMain,
			config.LogKeySource, source)
	}

	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	settings := config.Settings{
		APIKey:  key,
		Model:   a.Preferences().StringWithFallback(config.PrefModel, config.DefaultModel),
		Timeout: config.RequestTimeout,
	}

	gen, err := gemini.NewGenAIGenerator(ctx, settings)
	if err != nil {
		return err
	}
	slog.Info(config.MsgClientReady,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyModel, settings.Model)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewFeedServer(port)

	gui := ui.NewLichApp(a, ctx, gemini.NewSource(gen), srv, nil)
	gui.SetTimeout(settings.Timeout)

	// Start the Application (blocks until the UI loop ends).
	gui.Run()

	return nil
}

// promptAndStoreKey reads the API key without echo and saves it in the keyring.
func promptAndStoreKey() error {
	fmt.Print(config.MsgKeyPrompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyPrompt, err)
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return errors.New(config.ErrKeyEmpty)
	}
	if err := keyring.Set(config.KeyringService, config.KeyringUser, key); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringWrite, err)
	}
	return nil
}

// printVersion outputs the build information to stdout and exits.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyBuiltAt, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
