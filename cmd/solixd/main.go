// Command solixd serves the solix API and manages Solana CLI keypair files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	httpx "github.com/mark3labs/solix/http"
	"github.com/mark3labs/solix/http/chi"
	"github.com/mark3labs/solix/http/gin"
	"github.com/mark3labs/solix/mcp/server"
	"github.com/mark3labs/solix/metrics"
	"github.com/mark3labs/solix/service"
	"github.com/mark3labs/solix/svm"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return runServe(ctx, args, stdout)
	}

	switch args[0] {
	case "serve":
		return runServe(ctx, args[1:], stdout)
	case "keygen":
		return runKeygen(args[1:], stdout)
	case "pubkey":
		return runPubkey(args[1:], stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "solixd - stateless Solana keypair, signing and instruction API")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  solixd [serve] [flags]         - Run the HTTP server")
	fmt.Fprintln(w, "  solixd keygen -o FILE [flags]  - Write a new Solana CLI keypair file")
	fmt.Fprintln(w, "  solixd pubkey FILE             - Print the public key of a keypair file")
}

// envOr returns the environment value of key, or def when unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

type serveOptions struct {
	addr     string
	router   string
	mcp      bool
	metrics  bool
	logLevel string
	maxBody  int64
}

func parseServeFlags(args []string) (serveOptions, error) {
	var opts serveOptions
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&opts.addr, "addr", envOr("SOLIX_ADDR", ":8080"), "Listen address (SOLIX_ADDR)")
	fs.StringVar(&opts.router, "router", envOr("SOLIX_ROUTER", "std"), "Router: std, chi or gin (SOLIX_ROUTER)")
	fs.BoolVar(&opts.mcp, "mcp", envBool("SOLIX_MCP", false), "Serve MCP tools at /mcp (SOLIX_MCP)")
	fs.BoolVar(&opts.metrics, "metrics", envBool("SOLIX_METRICS", true), "Serve Prometheus metrics at /metrics (SOLIX_METRICS)")
	fs.StringVar(&opts.logLevel, "log-level", envOr("SOLIX_LOG_LEVEL", "info"), "Log level: debug, info, warn, error (SOLIX_LOG_LEVEL)")
	fs.Int64Var(&opts.maxBody, "max-body", 0, "Maximum request body size in bytes (0 for the default)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// newHandler builds the configured router with every solix route.
func newHandler(opts serveOptions, logger *slog.Logger) (http.Handler, error) {
	svc, err := service.New(service.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	config := &httpx.Config{
		Service:      svc,
		Logger:       logger,
		MaxBodyBytes: opts.maxBody,
	}
	if opts.metrics {
		config.Metrics = metrics.New()
	}
	if opts.mcp {
		mcpServer, err := server.NewServer("solix", version, &server.Config{
			Service: svc,
			Logger:  logger,
			Metrics: config.Metrics,
		})
		if err != nil {
			return nil, err
		}
		config.MCP = mcpServer.Handler()
	}

	switch opts.router {
	case "std", "":
		return httpx.NewHandler(config), nil
	case "chi":
		return chi.NewRouter(config), nil
	case "gin":
		return gin.NewEngine(config), nil
	default:
		return nil, fmt.Errorf("unknown router %q (want std, chi or gin)", opts.router)
	}
}

func runServe(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseServeFlags(args)
	if err != nil {
		return err
	}
	logger, err := newLogger(opts.logLevel, stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	handler, err := newHandler(opts, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", opts.addr, "router", opts.router, "mcp", opts.mcp, "metrics", opts.metrics)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runKeygen(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	out := fs.String("o", "", "Output file (required)")
	withMnemonic := fs.Bool("mnemonic", false, "Derive the keypair from a new BIP-39 mnemonic and print it")
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		fs.PrintDefaults()
		return errors.New("-o is required")
	}
	if !*force {
		if _, err := os.Stat(*out); err == nil {
			return fmt.Errorf("%s already exists (use -force to overwrite)", *out)
		}
	}

	var (
		kp       *svm.Keypair
		mnemonic string
		err      error
	)
	if *withMnemonic {
		mnemonic, err = svm.NewMnemonic(svm.DefaultMnemonicBits)
		if err == nil {
			kp, err = svm.KeypairFromMnemonic(mnemonic, "")
		}
	} else {
		kp, err = svm.GenerateKeypair()
	}
	if err != nil {
		return err
	}

	if err := svm.WriteKeygenFile(*out, kp); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote keypair to %s\n", *out)
	fmt.Fprintf(stdout, "pubkey: %s\n", kp.PublicKey())
	if mnemonic != "" {
		fmt.Fprintf(stdout, "mnemonic: %s\n", mnemonic)
	}
	return nil
}

func runPubkey(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: solixd pubkey FILE")
	}
	signer, err := svm.NewSigner(svm.WithKeygenFile(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, signer.Address())
	return nil
}
