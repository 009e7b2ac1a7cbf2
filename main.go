package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/LLwassim/LLwassim.github.io/api"
	"github.com/LLwassim/LLwassim.github.io/contact"
	"github.com/LLwassim/LLwassim.github.io/content"
	"github.com/LLwassim/LLwassim.github.io/logger"
	"github.com/LLwassim/LLwassim.github.io/mcp"
	"github.com/LLwassim/LLwassim.github.io/middleware"
	"github.com/LLwassim/LLwassim.github.io/site"
	"github.com/LLwassim/LLwassim.github.io/watch"
	"github.com/LLwassim/LLwassim.github.io/work"
	"github.com/LLwassim/LLwassim.github.io/ws"
	"github.com/fatih/color"
	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time via ldflags.
var Version = "dev"

const (
	contactInterval = time.Minute
	contactBurst    = 3
	shutdownTimeout = 10 * time.Second
)

type options struct {
	port       string
	contentDir string
	dataDir    string
	devMode    bool
	trustProxy bool
	adminToken string
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

// app holds the stores shared by every command.
type app struct {
	siteStore *site.Store
	library   *content.Library
	workStore *work.ContentStore
}

func newApp(opts options) (*app, error) {
	siteStore, err := site.NewStore(opts.dataDir)
	if err != nil {
		return nil, fmt.Errorf("load site config: %w", err)
	}

	library := content.NewLibrary(content.NewLoader(opts.contentDir, func() work.Taxonomy {
		return siteStore.Get().Taxonomy()
	}))

	workStore, err := work.NewContentStore(opts.contentDir, library.LoadWorkItems)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	return &app{siteStore: siteStore, library: library, workStore: workStore}, nil
}

// services are the live parts of a running server.
type services struct {
	handler     http.Handler
	workWatcher *watch.WorkListWatcher
	siteWatcher *watch.SiteWatcher
	limiter     *contact.RateLimiter
}

func (s *services) stop() {
	s.workWatcher.Stop()
	s.siteWatcher.Stop()
	s.limiter.Stop()
}

func newServices(a *app, opts options) (*services, error) {
	workWatcher := watch.NewWorkListWatcher(a.workStore)
	if err := workWatcher.Start(); err != nil {
		return nil, fmt.Errorf("start work list watcher: %w", err)
	}
	siteWatcher := watch.NewSiteWatcher(a.siteStore)
	if err := siteWatcher.Start(); err != nil {
		workWatcher.Stop()
		return nil, fmt.Errorf("start site watcher: %w", err)
	}
	// Categories come from site.yaml, so a config change can invalidate content.
	siteWatcher.SetOnChange(func(site.Config) {
		if err := a.workStore.Reload(); err != nil {
			slog.Warn("content rejected after site change", "error", err)
		}
	})

	limiter := contact.NewRateLimiter(contactInterval, contactBurst)
	contactService := contact.NewService(contact.NewClient(), func() string {
		return a.siteStore.Get().Integrations.FormEndpoint
	}, limiter)

	return &services{
		handler:     newHandler(a, contactService, workWatcher, siteWatcher, opts),
		workWatcher: workWatcher,
		siteWatcher: siteWatcher,
		limiter:     limiter,
	}, nil
}

func newHandler(a *app, contactService *contact.Service, workWatcher *watch.WorkListWatcher, siteWatcher *watch.SiteWatcher, opts options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	api.NewHandler(a.workStore, a.library, a.siteStore, contactService).Register(mux, opts.adminToken != "")

	rpcHandler := ws.NewRPCHandler(opts.devMode, a.workStore, a.library, a.siteStore, contactService, workWatcher, siteWatcher)
	mux.Handle("GET /ws", rpcHandler)

	var h http.Handler = middleware.Auth(opts.adminToken)(mux)
	h = middleware.ClientAddr(opts.trustProxy)(h)
	h = middleware.RequestLogger(h)
	return middleware.Recover(h)
}

func runServe(ctx context.Context, opts options) error {
	logger.Init(logger.Config{DataDir: opts.dataDir, DevMode: opts.devMode})

	a, err := newApp(opts)
	if err != nil {
		return err
	}

	if err := a.siteStore.StartWatching(); err != nil {
		slog.Warn("site config watching disabled", "error", err)
	}
	defer a.siteStore.StopWatching()
	if err := a.workStore.StartWatching(); err != nil {
		slog.Warn("content watching disabled", "error", err)
	}
	defer a.workStore.StopWatching()

	svc, err := newServices(a, opts)
	if err != nil {
		return err
	}
	defer svc.stop()

	srv := &http.Server{
		Addr:              ":" + opts.port,
		Handler:           svc.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	localURL := "http://localhost:" + opts.port
	slog.Info("server starting", "port", opts.port, "contentDir", opts.contentDir, "siteConfig", a.siteStore.Path(), "trustProxy", opts.trustProxy, "version", Version)
	printBanner(os.Stdout, localURL)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printBanner(w *os.File, url string) {
	if !term.IsTerminal(int(w.Fd())) {
		return
	}
	fmt.Fprintf(w, "\nPortfolio server running at %s\n\n", url)
	qrterminal.GenerateHalfBlock(url, qrterminal.L, w)
}

func runMCP(opts options) error {
	// stdout carries the MCP protocol, so logs always go to a file.
	logger.Init(logger.Config{DataDir: opts.dataDir})

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	return mcp.NewServer(a.workStore, a.library, a.siteStore, Version).Serve()
}

var (
	featuredColor = color.New(color.FgYellow, color.Bold)
	categoryColor = color.New(color.FgCyan)
	dimColor      = color.New(color.Faint)
)

func runWork(w io.Writer, opts options, category, order string) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}

	sortOpts, err := work.ParseOrder(order)
	if err != nil {
		return err
	}
	items := work.FilterAndSort(a.workStore.List(), work.ParseSelector(category), sortOpts...)
	printItems(w, items)
	return nil
}

func printItems(w io.Writer, items []work.Item) {
	if len(items) == 0 {
		dimColor.Fprintln(w, "No work in this category.")
		return
	}
	for _, it := range items {
		marker := "  "
		title := it.Title
		if it.Featured {
			marker = featuredColor.Sprint("★ ")
			title = featuredColor.Sprint(it.Title)
		}
		fmt.Fprintf(w, "%s%s %s %s\n", marker, title, categoryColor.Sprintf("[%s]", it.Category), dimColor.Sprint(it.ID))
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	var noColor bool

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio site backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.contentDir, "content", envOr("CONTENT_DIR", "./content"), "content directory (env CONTENT_DIR)")
	pf.StringVar(&opts.dataDir, "data", envOr("DATA_DIR", "./data"), "data directory holding site.yaml (env DATA_DIR)")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")

	serveFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&opts.port, "port", envOr("PORT", "8080"), "listen port (env PORT)")
		cmd.Flags().BoolVar(&opts.devMode, "dev", envBool("DEV_MODE"), "development mode (env DEV_MODE)")
		cmd.Flags().BoolVar(&opts.trustProxy, "trust-proxy", envBool("TRUST_PROXY"), "take the client address from X-Forwarded-For (env TRUST_PROXY)")
	}
	serveFlags(root)
	opts.adminToken = os.Getenv("ADMIN_TOKEN")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP and WebSocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	serveFlags(serveCmd)

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(opts)
		},
	}

	var order string
	workCmd := &cobra.Command{
		Use:   "work [category]",
		Short: "Print the work list for a category",
		Example: `  # Featured first
  portfolio work AI

  # Featured first, each group by ascending display order
  portfolio work AI --order display`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := work.AllToken
			if len(args) == 1 {
				category = args[0]
			}
			return runWork(cmd.OutOrStdout(), opts, category, order)
		},
	}
	workCmd.Flags().StringVar(&order, "order", "", `featured items always lead; "display" also orders each group by ascending display order`)

	root.AddCommand(serveCmd, mcpCmd, workCmd)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
