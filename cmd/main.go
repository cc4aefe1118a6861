package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/takak2166/tumblr2ghost/internal/config"
	"github.com/takak2166/tumblr2ghost/internal/converter"
	"github.com/takak2166/tumblr2ghost/internal/logger"
	"github.com/takak2166/tumblr2ghost/internal/migrate"
	"github.com/takak2166/tumblr2ghost/internal/models"
	"github.com/takak2166/tumblr2ghost/internal/server"
	"github.com/takak2166/tumblr2ghost/internal/tumblr"
)

func main() {
	// Parse command line flags
	blog := flag.String("blog", "", "Tumblr blog to export, e.g. staff.tumblr.com")
	inputFile := flag.String("input", "", "Path to a saved Tumblr posts JSON file")
	outputFile := flag.String("output", "", "Path of the Ghost import file (optional)")
	serve := flag.Bool("serve", false, "Serve the export web form instead of running once")
	flag.Parse()

	modes := 0
	for _, set := range []bool{*blog != "", *inputFile != "", *serve} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		fmt.Println("Error: exactly one of -blog, -input or -serve is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	opts := converter.Options{
		Version:         cfg.ExportVersion,
		AuthorID:        cfg.AuthorID,
		ConvertMarkdown: cfg.ConvertMarkdown,
	}

	if *inputFile != "" {
		posts, err := tumblr.LoadFile(*inputFile)
		if err != nil {
			logger.Error("Failed to parse input file", err, nil)
			os.Exit(1)
		}
		m := migrate.New(nil, opts, cfg.WrapDB)
		name := trimExt(filepath.Base(*inputFile))
		mustWriteExport(m, m.Convert(posts), outputPath(*outputFile, cfg.OutputDir, name))
		return
	}

	if err := cfg.RequireAPIKey(); err != nil {
		logger.Error("Failed to initialize Tumblr client", err, nil)
		os.Exit(1)
	}

	client, err := tumblr.New(tumblr.Config{
		APIKey:            cfg.TumblrAPIKey,
		BaseURL:           cfg.TumblrAPIURL,
		PageSize:          cfg.PageSize,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Timeout:           cfg.HTTPTimeout,
	})
	if err != nil {
		logger.Error("Failed to initialize Tumblr client", err, nil)
		os.Exit(1)
	}
	m := migrate.New(client, opts, cfg.WrapDB)

	if *serve {
		if err := runServer(m, cfg.HTTPAddr); err != nil {
			logger.Error("Server stopped", err, nil)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := m.Run(ctx, *blog)
	if err != nil {
		logger.Error("Failed to export blog", err, map[string]interface{}{
			"blog":         *blog,
			"invalid_blog": errors.Is(err, tumblr.ErrInvalidSource),
		})
		os.Exit(1)
	}
	mustWriteExport(m, doc, outputPath(*outputFile, cfg.OutputDir, tumblr.NormalizeBlog(*blog)))
}

func outputPath(flagValue, outputDir, name string) string {
	if flagValue != "" {
		return flagValue
	}
	return filepath.Join(outputDir, name+"-ghost.json")
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

// writeExport writes doc to path, creating its directory. The file is
// closed before returning so a failed flush is reported.
func writeExport(m *migrate.Migrator, doc *models.GhostExport, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := m.WriteJSON(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	logger.Info("Export completed", map[string]interface{}{
		"posts":    len(doc.Data.Posts),
		"tags":     len(doc.Data.Tags),
		"filepath": path,
	})
	return nil
}

func mustWriteExport(m *migrate.Migrator, doc *models.GhostExport, path string) {
	if err := writeExport(m, doc, path); err != nil {
		logger.Error("Failed to save export", err, map[string]interface{}{
			"filepath": path,
		})
		os.Exit(1)
	}
}

func runServer(m *migrate.Migrator, addr string) error {
	handler, err := server.New(m)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", map[string]interface{}{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
