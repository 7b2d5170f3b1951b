package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashboard/internal/anchor"
	"dashboard/internal/api"
	"dashboard/internal/apiclient"
	"dashboard/internal/config"
	"dashboard/internal/dashboard"
	"dashboard/internal/eventlog"
	"dashboard/internal/models"
	"dashboard/internal/retry"
	"dashboard/internal/simulation"
	"dashboard/internal/storage"
	"dashboard/internal/views"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🌟 Starting Pakana Dashboard...")

	// 1. Load configuration, flags override the environment
	_ = godotenv.Load()
	cfg := config.Load()

	apiURL := flag.String("api", cfg.ReportAPIURL, "Reporting API base URL")
	port := flag.Int("port", cfg.APIPort, "Dashboard HTTP port")
	interval := flag.Duration("interval", cfg.PollInterval, "Ledger poll interval")
	console := flag.Bool("console", cfg.ConsoleView, "Draw the console view on stdout")
	flag.Parse()

	cfg.ReportAPIURL = *apiURL
	cfg.APIPort = *port
	cfg.PollInterval = *interval
	cfg.ConsoleView = *console

	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// 2. Configure logger
	logger := newLogger(cfg.LogLevel, logOutput(cfg.ConsoleView, os.Stdout, os.Stderr))
	slog.SetDefault(logger)

	slog.Info("Configuration loaded",
		"report_api", cfg.ReportAPIURL,
		"poll_interval", cfg.PollInterval,
		"network", cfg.NetworkPassphrase,
		"log_level", cfg.LogLevel,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Open preferences store and read consent once
	repository, err := storage.Open(ctx, cfg.PreferencesDatabaseURL, cfg.PreferencesPath)
	if err != nil {
		log.Fatalf("❌ Failed to open preferences store: %v", err)
	}
	defer repository.Close()

	consent, err := repository.GetConsent(ctx)
	if err != nil {
		slog.Warn("Could not read consent, treating as unset", "error", err)
		consent = models.ConsentUnset
	}

	// 4. Create reporting API client
	retryCfg := retry.LoadConfig()
	client, err := apiclient.New(apiclient.Options{
		BaseURL: cfg.ReportAPIURL,
		APIKey:  cfg.ReportAPIKey,
		Timeout: cfg.RequestTimeout,
		Retry:   retry.NewStrategy(retryCfg),
	})
	if err != nil {
		log.Fatalf("❌ Failed to create reporting API client: %v", err)
	}

	// 5. Dashboard state and views
	dash := dashboard.New(eventlog.New(), consent)

	viewList := []views.View{views.NewDebugView()}
	if cfg.ConsoleView {
		viewList = append(viewList, views.NewConsoleView(os.Stdout))
	}
	broadcaster := views.NewBroadcaster(viewList)
	dash.SetPublisher(broadcaster)
	slog.Info("Views enabled", "views", len(broadcaster.Views()))

	// 6. Poller and lookups share one synthesizer
	synth := simulation.New()
	poller := dashboard.NewPoller(client, synth, dash, cfg.PollInterval)
	looker := dashboard.NewLooker(client, synth, dash, cfg.SimulatedLookupDelay)

	var anchorer api.Anchorer
	if cfg.AnchorAccount != "" {
		anchorer = anchor.NewService(client, dash, dash.Log(), cfg.AnchorAccount, cfg.NetworkPassphrase)
		slog.Info("Document anchoring enabled", "account", cfg.AnchorAccount)
	}

	// 7. Start API server
	server := api.NewServer(cfg.APIPort, dash, looker, anchorer, repository)
	if err := server.Start(); err != nil {
		log.Fatalf("❌ Failed to start API server: %v", err)
	}

	// 8. Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := poller.Start(ctx); err != nil {
		log.Fatalf("❌ Failed to start poller: %v", err)
	}

	<-sigChan
	slog.Warn("Interrupt received, shutting down...")
	cancel()
	poller.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error stopping API server", "error", err)
	}

	slog.Info("Dashboard stopped")
}

// newLogger builds the text logger at the given level (default info)
func newLogger(level string, out io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// logOutput is stdout, except while the console view draws its frames there
func logOutput(consoleView bool, stdout, stderr io.Writer) io.Writer {
	if consoleView {
		return stderr
	}
	return stdout
}
