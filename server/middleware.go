package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stellar-blinks/blink-server-go/config"
)

// Blink protocol headers. Clients use these to discover which ledger and
// protocol version an action targets, so they ride on every response.
const (
	headerBlockchainIDs = "x-blockchain-ids"
	headerActionVersion = "x-action-version"
)

// protocolHeaders sets the CORS and Blink protocol headers on every
// response, error responses included, and short-circuits CORS preflight
// requests with a bare 200.
func (s *Server) protocolHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+headerBlockchainIDs+", "+headerActionVersion)
		h.Set("Access-Control-Expose-Headers", headerBlockchainIDs+", "+headerActionVersion)
		h.Set(headerBlockchainIDs, s.cfg.Network.BlockchainID)
		h.Set(headerActionVersion, config.BlinkVersion)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one structured line per request with a generated
// request id, echoed back in X-Request-Id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
		}).Info("request handled")
	})
}
