package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-ai/inkwell/internal/adapters/driving/httpapi"
	"github.com/inkwell-ai/inkwell/internal/logger"
)

// shutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP server exposing the document library and chat API.

Endpoints:
  POST   /api/documents       Upload and index a PDF (multipart "file")
  GET    /api/documents       List indexed documents
  GET    /api/documents/{id}  Get one document
  DELETE /api/documents/{id}  Remove a document
  POST   /api/search          Retrieve relevant passages
  POST   /api/chat            Ask a question (SSE token stream)
  GET    /api/health          Health check

Documents live in memory; they are gone when the server stops.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	stack, err := buildStack()
	if err != nil {
		return err
	}
	defer stack.close()

	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}

	handler := httpapi.NewHandler(stack.library, stack.retriever, stack.chat)
	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	cmd.Printf("inkwell listening on %s\n", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
