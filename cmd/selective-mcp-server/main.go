package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/github/selective-mcp-server/pkg/builtin"
	ghhttp "github.com/github/selective-mcp-server/pkg/http"
	"github.com/github/selective-mcp-server/pkg/metrics"
	"github.com/github/selective-mcp-server/pkg/selection"
	"github.com/github/selective-mcp-server/pkg/server"
)

// These variables are set by the build process using ldflags.
var version = "version"
var commit = "commit"
var date = "date"

var (
	rootCmd = &cobra.Command{
		Use:     "server",
		Short:   "Selective MCP Server",
		Long:    `An MCP server that lists only the tools a client asks for.`,
		Version: fmt.Sprintf("Version: %s\nCommit: %s\nBuild Date: %s", version, commit, date),
	}

	stdioCmd = &cobra.Command{
		Use:   "stdio",
		Short: "Start stdio server",
		Long:  `Start a server that communicates via standard input/output streams using JSON-RPC messages.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(viper.GetViper())
			if err != nil {
				return err
			}
			return runStdioServer(cfg)
		},
	}

	httpCmd = &cobra.Command{
		Use:   "http",
		Short: "Start HTTP server",
		Long:  `Start a stateless streamable HTTP server. The tool selection is taken from the URL path or the X-MCP-Tools header.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(viper.GetViper())
			if err != nil {
				return err
			}
			return runHTTPServer(cfg)
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(wordSepNormalizeFunc)

	rootCmd.SetVersionTemplate("{{.Short}}\n{{.Version}}\n")

	// Add global flags that will be shared by all commands
	rootCmd.PersistentFlags().String("config", "", "Path to a config file")
	rootCmd.PersistentFlags().String("error-behavior", "ignore", "How unknown tool names are handled: ignore, strict, warn or fallback")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file")
	rootCmd.PersistentFlags().StringSlice("toolsets", []string{"all"}, "An optional comma separated list of toolsets to enable")

	// Stdio specific flags
	stdioCmd.Flags().String("tools", "", "Comma or slash separated list of tools to list; all tools when empty")

	// HTTP specific flags
	httpCmd.Flags().String("address", ":8082", "Address to listen on")
	httpCmd.Flags().String("base-path", "/mcp", "Path of the MCP endpoint")
	httpCmd.Flags().Bool("enable-metrics", false, "Expose Prometheus metrics on /metrics")
	httpCmd.Flags().Duration("selection-cache-ttl", 5*time.Minute, "How long parsed tool selections are cached; 0 disables caching")
	httpCmd.Flags().Int("selection-cache-max-entries", 1000, "Maximum number of cached tool selections; 0 disables caching")

	// Bind flag to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("error-behavior", rootCmd.PersistentFlags().Lookup("error-behavior"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("toolsets", rootCmd.PersistentFlags().Lookup("toolsets"))
	_ = viper.BindPFlag("tools", stdioCmd.Flags().Lookup("tools"))
	_ = viper.BindPFlag("address", httpCmd.Flags().Lookup("address"))
	_ = viper.BindPFlag("base-path", httpCmd.Flags().Lookup("base-path"))
	_ = viper.BindPFlag("enable-metrics", httpCmd.Flags().Lookup("enable-metrics"))
	_ = viper.BindPFlag("selection-cache-ttl", httpCmd.Flags().Lookup("selection-cache-ttl"))
	_ = viper.BindPFlag("selection-cache-max-entries", httpCmd.Flags().Lookup("selection-cache-max-entries"))

	// Add subcommands
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(httpCmd)
}

func initConfig() {
	// Initialize Viper configuration
	viper.SetEnvPrefix("selective_mcp")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if path := viper.GetString("config"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read config file %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func runStdioServer(cfg Config) error {
	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	sel, err := selection.Parse(cfg.Tools)
	if err != nil {
		metrics.SelectionParseErrorsTotal.WithLabelValues(metrics.SourceFlag).Inc()
		return fmt.Errorf("invalid --tools: %w", err)
	}

	group, err := builtin.DefaultToolsetGroup(cfg.Toolsets)
	if err != nil {
		return fmt.Errorf("failed to enable toolsets: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.NewMCPServer(&server.MCPServerConfig{
		Version:       version,
		ErrorBehavior: cfg.ErrorBehavior,
		Logger:        logger,
	}, group, sel)

	logger.Info("starting stdio server",
		"version", version,
		"errorBehavior", cfg.ErrorBehavior.String(),
		"selection", sel.String(),
	)

	if err := s.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server error: %w", err)
	}
	logger.Info("shutting down server")
	return nil
}

func runHTTPServer(cfg Config) error {
	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	return ghhttp.RunHTTPServer(context.Background(), ghhttp.ServerConfig{
		Version:                  version,
		Address:                  cfg.Address,
		BasePath:                 cfg.BasePath,
		ErrorBehavior:            cfg.ErrorBehavior,
		EnabledToolsets:          cfg.Toolsets,
		EnableMetrics:            cfg.EnableMetrics,
		SelectionCacheTTL:        cfg.SelectionCacheTTL,
		SelectionCacheMaxEntries: cfg.SelectionCacheMaxEntries,
		Logger:                   logger,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func wordSepNormalizeFunc(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	from := []string{"_"}
	to := "-"
	for _, sep := range from {
		name = strings.ReplaceAll(name, sep, to)
	}
	return pflag.NormalizedName(name)
}
