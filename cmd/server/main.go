/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the attendance engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize the store (SQLite, or the historical JSON-file layout)
  3. Load persisted state into the service
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path; use ":memory:" for in-memory
  -data    JSON data directory (the original employees.json/attendance.json
           layout). Used when -db is empty. Default: ./data

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the store
  4. Exit

EXAMPLES:
  # Run against the historical JSON files
  ./server -data=./data

  # Run with a SQLite database
  ./server -db=./data/attendance.db

SEE ALSO:
  - api/server.go: Router configuration
  - attendance/service.go: Domain service
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/attendance-engine/api"
	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/store/jsonfile"
	"github.com/warp/attendance-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "", "SQLite database path (overrides -data)")
	dataDir := flag.String("data", "./data", "JSON data directory")
	flag.Parse()

	// Initialize store
	var store attendance.Store
	if *dbPath != "" {
		s, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer s.Close()
		store = s
	} else {
		s, err := jsonfile.New(*dataDir)
		if err != nil {
			log.Fatalf("Failed to initialize data directory: %v", err)
		}
		store = s
	}

	// Load state and build the service
	service, err := attendance.NewService(context.Background(), store)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	// Create router
	router := api.NewRouter(api.NewHandler(service))

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
