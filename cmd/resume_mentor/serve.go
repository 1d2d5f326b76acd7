package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/navinkumarg9/pro-resume-mentor/internal/server"
	"github.com/navinkumarg9/pro-resume-mentor/internal/storage"
	"github.com/navinkumarg9/pro-resume-mentor/internal/store"
)

var (
	serveHost   string
	servePort   int
	serveResume string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local editing API",
	Long:  `Start an HTTP server that holds one live resume document, rescores it after edits and streams changes over server-sent events.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to listen on (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config or PORT)")
	serveCmd.Flags().StringVarP(&serveResume, "resume", "r", "", "Resume JSON file to start from (default: blank resume)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	doc, err := readResume(serveResume)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, kv, err := openLibrary(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	srv := server.New(server.Config{
		Addr:          serveAddr(),
		CORSOrigins:   cfg.Server.CORSOrigins,
		AnalysisDelay: cfg.AnalysisDelay(),
		AutoSave:      cfg.Export.AutoSave,
		Logger:        slog.Default(),
	}, store.New(store.WithResume(doc)), lib, newExporter())

	slog.Info("library storage", "url", storage.Redact(cfg.StorageURL))
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}

func serveAddr() string {
	if serveHost == "" && servePort == 0 {
		return cfg.Addr()
	}
	host, port := cfg.Server.Host, cfg.Server.Port
	if serveHost != "" {
		host = serveHost
	}
	if servePort != 0 {
		port = servePort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
