package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/kartdaily-api/controllers"
	"github.com/Kariqs/kartdaily-api/initializers"
	"github.com/Kariqs/kartdaily-api/payment"
	"github.com/Kariqs/kartdaily-api/routes"
	"github.com/Kariqs/kartdaily-api/uploads"
	"github.com/Kariqs/kartdaily-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg := initializers.LoadEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := initializers.ConnectToDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Println("Error closing database:", err)
		}
	}()

	if err := initializers.SyncDatabase(ctx, db); err != nil {
		return err
	}

	productCache, closeCache := initializers.ConnectToCache(ctx, cfg)
	defer closeCache()

	var uploader controllers.ImageUploader
	if cfg.AWSBucket != "" {
		s3Uploader, err := uploads.NewFromEnv(ctx, cfg.AWSBucket)
		if err != nil {
			log.Println("Image uploads disabled:", err)
		} else {
			uploader = s3Uploader
		}
	}

	mailer := utils.NewMailer(cfg.Mail)
	router := routes.NewRouter(routes.Dependencies{
		Store:         db,
		Tokens:        utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		Gateway:       payment.NewRazorpay(cfg.Razorpay),
		Notifier:      mailer,
		Cache:         productCache,
		Uploader:      uploader,
		WebhookSecret: cfg.Razorpay.KeySecret,
		Production:    cfg.Production(),
		CORSOrigins:   cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server running in %s mode on port %s", cfg.AppEnv, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	mailer.Wait()

	log.Println("Server exited")
	return nil
}
