package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"marketing_strategy_assistant/config"
	"marketing_strategy_assistant/generator"
	"marketing_strategy_assistant/render"
	"marketing_strategy_assistant/server"
)

var (
	configPath string
	verbose    bool
	logger     *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "marketing-assistant",
		Short:         "Turn a product brief into a three-part marketing strategy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/config.json", "path to config.json")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")
	root.AddCommand(newServeCmd(), newGenerateCmd())
	return root
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return cfg.Build()
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			llm, err := buildLLM(cmd.Context(), cfg.LLM)
			if err != nil {
				return err
			}
			srv, err := server.New(llm, cfg.LLM.Timeout(), logger)
			if err != nil {
				return err
			}
			listen := cfg.ServerAddr
			if addr != "" {
				listen = addr
			}
			return serve(cmd.Context(), listen, srv.Routes())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "http listen address (overrides config server_addr)")
	return cmd
}

func serve(parent context.Context, addr string, h http.Handler) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting web server", zap.String("addr", addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newGenerateCmd() *cobra.Command {
	var brief, format string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one strategy from --brief or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "markdown" {
				return fmt.Errorf("unknown --format %q (json or markdown)", format)
			}
			if brief == "" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				brief = strings.TrimRight(string(b), "\n")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			llm, err := buildLLM(cmd.Context(), cfg.LLM)
			if err != nil {
				return err
			}
			ctrl, err := generator.NewController(llm, generator.WithLogger(logger))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout())
			defer cancel()
			state, err := ctrl.Submit(ctx, brief)
			if err != nil {
				if state.Reason != "" {
					return fmt.Errorf("%s: %w", state.Reason, err)
				}
				return err
			}

			out := cmd.OutOrStdout()
			if format == "markdown" {
				_, err = io.WriteString(out, render.Markdown(*state.Strategy))
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(state.Strategy)
		},
	}
	cmd.Flags().StringVar(&brief, "brief", "", "product or service description (default: read stdin)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or markdown")
	return cmd
}

func buildLLM(ctx context.Context, cfg config.LLMConfig) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout(),
	}
	switch cfg.Provider {
	case "openai", "deepseek":
		// DeepSeek speaks the OpenAI protocol at its own base_url.
		return generator.NewOpenAILLMFromConfig(settings)
	case "gemini":
		return generator.NewGeminiLLMFromConfig(ctx, settings)
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
