package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpAdapter "github.com/labscript-ai/labscript/internal/adapters/http"
	"github.com/labscript-ai/labscript/pkg/orchestrator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server for the web frontend",
	Long:  `Starts the session API consumed by the LabScript web UI, exposing state, workflow actions and the generation pipeline over JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		metrics := orchestrator.NewMetrics(prometheus.DefaultRegisterer)

		app, cfg, err := buildApp(cmd, metrics)
		if err != nil {
			fmt.Printf("Error initializing labscript: %v\n", err)
			os.Exit(1)
		}

		ctx := cmd.Context()
		app.Restore(ctx)

		r := chi.NewRouter()
		r.Handle("/metrics", promhttp.Handler())
		r.Mount("/", httpAdapter.NewHandler(app.Store(), app.Orchestrator(), app.Persistence()))

		addr := cfg.Server.ListenAddr
		if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
			addr = flagAddr
		}

		srv := &http.Server{
			Addr:    addr,
			Handler: r,
		}

		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting LabScript Server on %s\n", srv.Addr)
			fmt.Printf("Generation service: %s\n", cfg.Service.URL)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("LabScript Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address, overrides the config file")
}
