package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bbqjunction/tabletalk/config"
	"github.com/bbqjunction/tabletalk/dialogue"
	"github.com/bbqjunction/tabletalk/knowledge"
	"github.com/bbqjunction/tabletalk/oracle"
	"github.com/bbqjunction/tabletalk/server"
	"github.com/bbqjunction/tabletalk/session"
	"github.com/bbqjunction/tabletalk/sink"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	kb := knowledge.NewStore()

	registry, err := dialogue.NewRegistry(kb)
	if err != nil {
		log.Fatalf("Failed to load conversation states: %v", err)
	}

	engine := dialogue.NewEngine(registry, kb)
	if o := buildOracle(cfg); o != nil {
		engine.SetOracle(o, cfg.OracleTimeout, cfg.OracleThreshold)
	}

	logSink, retrier := buildSink(cfg)
	if retrier != nil {
		defer retrier.Close()
	}

	// Create session manager
	sessionManager, err := session.NewManager(cfg, engine, logSink)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	// Start cleanup routine
	ctx, cancel := context.WithCancel(context.Background())
	go sessionManager.StartCleanupRoutine(ctx)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	switch cfg.ServerType {
	case "websocket":
		srv := server.NewServerWebsocket(cfg, sessionManager)

		go func() {
			<-sigChan
			log.Println("\nReceived shutdown signal...")
			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server shutdown error: %v", err)
			}
		}()

		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("Server error: %v", err)
		}

	case "rest":
		restSrv := server.NewRestServer(cfg, sessionManager, kb)

		go func() {
			<-sigChan
			log.Println("\nReceived shutdown signal...")
			cancel()
			sessionManager.Shutdown()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := restSrv.Shutdown(shutdownCtx); err != nil {
				log.Printf("REST server shutdown error: %v", err)
			}
		}()

		if err := restSrv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("REST server error: %v", err)
		}

	case "both":
		srv := server.NewServerWebsocket(cfg, sessionManager)
		restSrv := server.NewRestServer(cfg, sessionManager, kb)

		go func() {
			<-sigChan
			log.Println("\nReceived shutdown signal...")
			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("WebSocket server shutdown error: %v", err)
			}
			if err := restSrv.Shutdown(shutdownCtx); err != nil {
				log.Printf("REST server shutdown error: %v", err)
			}
		}()

		// Start REST server in background
		go func() {
			if err := restSrv.Start(); err != nil && err.Error() != "http: Server closed" {
				log.Fatalf("REST server error: %v", err)
			}
		}()

		// Start WebSocket server (blocks)
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("WebSocket server error: %v", err)
		}

	default:
		log.Fatalf("Unknown SERVER_TYPE: %s", cfg.ServerType)
	}

	log.Println("Server stopped")
}

// buildOracle creates the configured intent oracle, or nil when disabled. A
// failing Gemini client is a warning, not a startup failure.
func buildOracle(cfg *config.Config) oracle.Oracle {
	switch cfg.OracleProvider {
	case config.OracleOpenAI:
		log.Println("🔮 Intent oracle: OpenAI")
		return oracle.NewOpenAI(cfg.OpenAIAPIKey, "")
	case config.OracleGemini:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		g, err := oracle.NewGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("⚠️ Gemini oracle unavailable, continuing rule-based: %v", err)
			return nil
		}
		log.Println("🔮 Intent oracle: Gemini")
		return g
	default:
		return nil
	}
}

// buildSink wires the conversation log pipeline. Without a SINK_URL records
// are discarded.
func buildSink(cfg *config.Config) (sink.Sink, *sink.Retrier) {
	if cfg.SinkURL == "" {
		log.Println("📋 Conversation logs: disabled (no SINK_URL)")
		return sink.Discard{}, nil
	}
	retrier := sink.NewRetrier(sink.NewWebhook(cfg.SinkURL, nil), cfg.SinkRetries)
	log.Printf("📋 Conversation logs: %s", cfg.SinkURL)
	return retrier, retrier
}
