package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/dot2archimate/converter/internal/convert"
	"github.com/dot2archimate/converter/internal/mapping"
)

// Convert returns a handler that converts a DOT document (request body) to
// ArchiMate XML. Failures come back as JSON diagnostics with status 422.
func Convert(cfg *mapping.Config, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if len(body) == 0 {
			http.Error(w, "Empty request body", http.StatusBadRequest)
			return
		}

		res := convert.Convert(string(body), cfg)
		if !res.Success {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			if err := json.NewEncoder(w).Encode(res); err != nil {
				log.Error("encode diagnostics", "error", err)
			}
			return
		}

		log.Info("converted document",
			"bytes_in", len(body),
			"bytes_out", len(res.XML),
			"dropped_relationships", res.DroppedRelationships)
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.XML)
	}
}
