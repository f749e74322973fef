package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sume/estra/internal/api"
	"github.com/sume/estra/internal/assistant"
	"github.com/sume/estra/internal/cache"
	"github.com/sume/estra/internal/config"
	"github.com/sume/estra/internal/dashboard"
	"github.com/sume/estra/internal/endpoint"
	"github.com/sume/estra/internal/metrics"
	"github.com/sume/estra/internal/middleware"
	"github.com/sume/estra/internal/session"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "estrad",
		Short: "ESTRA energy analytics dashboard service",
		Long: `estrad serves the ESTRA single-page energy dashboard: synthetic
consumption curves and statistics per cost center, cached access to the
remote energy-summary endpoint, and the S.O.S EnergIA assistant.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")

	if err := root.Execute(); err != nil {
		log.Fatalf("estrad: %v", err)
	}
}

func run(configPath string) error {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("ESTRA dashboard service starting...")

	// Secrets come from the environment; .env is optional.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded .env")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log.Printf("Energy endpoint: %s (timeout %ds, cache TTL %ds)",
		cfg.Endpoint.URL, cfg.Endpoint.TimeoutSec, cfg.Endpoint.CacheTTLSec)

	// Log enabled features
	if cfg.Auth.Enabled {
		log.Printf("  [feature] API key authentication enabled (%d keys)", len(cfg.Auth.Keys))
	}
	if cfg.RateLimit.Enabled {
		log.Printf("  [feature] Rate limiting enabled (%d req/min, burst %d)", cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstSize)
	}
	if cfg.Metrics.Enabled {
		log.Printf("  [feature] Prometheus metrics enabled at /metrics")
	}
	if cfg.Dashboard.Enabled {
		log.Printf("  [feature] Web dashboard enabled at /dashboard")
	}

	// Energy summary fetcher behind its TTL cache
	fetcher := endpoint.New(cfg.Endpoint.URL, cfg.Endpoint.Username, cfg.Endpoint.Password,
		time.Duration(cfg.Endpoint.TimeoutSec)*time.Second)
	summaries := cache.New(fetcher, time.Duration(cfg.Endpoint.CacheTTLSec)*time.Second)

	// Assistant strategy: remote provider when configured, canned otherwise.
	canned := assistant.NewCanned()
	var generator assistant.TextGenerator = canned
	switch cfg.Assistant.Provider {
	case "openai":
		if cfg.Assistant.APIKey == "" {
			log.Printf("  [assistant] openai selected but no API key; using canned replies")
		} else {
			generator = assistant.NewOpenAI("openai", cfg.Assistant.APIKey, "", cfg.Assistant.Model)
		}
	case "compatible":
		if cfg.Assistant.APIKey == "" {
			log.Printf("  [assistant] compatible provider selected but no API key; using canned replies")
		} else {
			generator = assistant.NewOpenAI("compatible", cfg.Assistant.APIKey, cfg.Assistant.BaseURL, cfg.Assistant.Model)
		}
	}
	log.Printf("  [assistant] provider: %s", generator.Name())

	sessions := session.NewManager(
		assistant.WelcomeMessage(generator.Name() != canned.Name()),
		time.Duration(cfg.Session.MaxIdleMin)*time.Minute,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Periodic session eviction
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.Evict(); n > 0 {
					log.Printf("[session] evicted %d idle session(s)", n)
				}
			}
		}
	}()

	// Optional: metrics
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	handler := api.NewHandler(summaries, generator, canned, sessions, m)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	handler.RegisterWS(mux)

	if m != nil {
		mux.HandleFunc("/metrics", m.Handler())
	}

	if cfg.Dashboard.Enabled {
		dashHandler := dashboard.NewHandler(cfg.Dashboard)
		dashHandler.RegisterRoutes(mux)
	}

	// Build middleware chain (applied in reverse order)
	var handler_ http.Handler = mux
	handler_ = corsMiddleware(handler_)
	handler_ = middleware.Logging(cfg.Logging.Format)(handler_)
	handler_ = middleware.RequestID(handler_)
	if cfg.RateLimit.Enabled {
		handler_ = middleware.RateLimit(cfg.RateLimit)(handler_)
	}
	if cfg.Auth.Enabled {
		handler_ = middleware.Auth(cfg.Auth)(handler_)
	}

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler_,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // websocket chat stays open
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Printf("Shutting down gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("Service listening on %s", cfg.ListenAddr)
	log.Printf("  GET  http://localhost%s/api/machines", cfg.ListenAddr)
	log.Printf("  GET  http://localhost%s/api/curve?machine=H75&period=Semana", cfg.ListenAddr)
	log.Printf("  GET  http://localhost%s/api/summary", cfg.ListenAddr)
	log.Printf("  GET  http://localhost%s/api/diagnostics", cfg.ListenAddr)
	log.Printf("  GET  http://localhost%s/api/energy", cfg.ListenAddr)
	log.Printf("  POST http://localhost%s/api/chat", cfg.ListenAddr)
	log.Printf("  GET  http://localhost%s/health", cfg.ListenAddr)
	if cfg.Metrics.Enabled {
		log.Printf("  GET  http://localhost%s/metrics", cfg.ListenAddr)
	}
	if cfg.Dashboard.Enabled {
		log.Printf("  GET  http://localhost%s/dashboard", cfg.ListenAddr)
	}

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
