// Command api serves the conversion pipeline over HTTP: GET /health for
// liveness, POST /convert for DOT-to-ArchiMate conversion.
package main

import (
	"net/http"
	"os"

	"github.com/dot2archimate/converter/internal/handlers"
	"github.com/dot2archimate/converter/internal/logger"
	"github.com/dot2archimate/converter/internal/mapping"
)

func main() {
	log := logger.New(os.Getenv("LOG_FORMAT"))

	cfg := mapping.DefaultConfig()
	if path := os.Getenv("MAPPING_CONFIG"); path != "" {
		loaded, err := mapping.Load(path)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(2)
		}
		cfg = loaded
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/convert", handlers.Convert(cfg, log))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, handlers.Cors(mux)); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
