package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sambbaron/tuneful/config"
	"github.com/sambbaron/tuneful/db"
	"github.com/sambbaron/tuneful/logger"
	"github.com/sambbaron/tuneful/repository"
	"github.com/sambbaron/tuneful/storage"
)

// Start initializes and starts the HTTP server. It blocks until the
// process receives SIGINT or SIGTERM.
func Start(cfg *config.Config) error {
	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	blobs, err := storage.New(initCtx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to open upload store: %w", err)
	}

	apiHandler := NewAPIHandler(repository.NewStore(gdb), blobs, cfg)

	// 设置服务器超时
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      NewHandler(apiHandler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 创建一个通道来接收操作系统信号
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			logger.String("addr", cfg.Server.Addr),
			logger.String("upload_backend", cfg.Upload.Backend),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待中断信号或启动失败
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-stop:
	}
	logger.Info("Shutting down server...")

	// 创建一个5秒超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
