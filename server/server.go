// Package server wires the Blink HTTP surface: action metadata, transaction
// construction, submission relay, static icon/preview assets, and health.
// Every response, success or failure, carries the CORS and Blink protocol
// headers other Blink-aware clients key off.
package server

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/sirupsen/logrus"

	"github.com/stellar-blinks/blink-server-go/config"
	"github.com/stellar-blinks/blink-server-go/payment"
)

const serviceName = "Stellar XLM Blinks Backend"

// Server holds the immutable wiring for the HTTP layer. Handlers keep no
// per-request state anywhere else; nothing survives a request.
type Server struct {
	cfg       config.Config
	builder   *payment.Builder
	submitter *payment.Submitter
	log       *logrus.Logger
	router    chi.Router
}

// New assembles a Server from its collaborators.
func New(cfg config.Config, builder *payment.Builder, submitter *payment.Submitter, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	s := &Server{
		cfg:       cfg,
		builder:   builder,
		submitter: submitter,
		log:       log,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.protocolHeaders)
	r.Use(s.requestLogger)
	r.Use(metricsMiddleware)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", metricsHandler())

	r.Route("/actions/transfer", func(r chi.Router) {
		r.Get("/", s.handleActionMetadata)
		r.Post("/", s.handleBuildTransfer)
		r.Get("/icon", s.handleIcon)
		r.Get("/preview", s.handlePreview)
		r.Post("/submit", s.handleSubmit)
	})

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleNotFound)

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
