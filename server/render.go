package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stellar-blinks/blink-server-go/errors"
)

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (s *Server) renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}

func (s *Server) renderErrorResponse(w http.ResponseWriter, status int, kind, message string) {
	s.renderJSON(w, status, errorResponse{Error: kind, Message: message})
}

// renderError maps a taxonomy error to its HTTP status and {error, message}
// body. Unexpected errors become a generic 500 with a timestamp and never
// leak internals to the caller.
func (s *Server) renderError(w http.ResponseWriter, err error) {
	var berr *errors.BlinkError
	if !errors.As(err, &berr) {
		s.log.WithError(err).Error("unhandled error")
		s.renderJSON(w, http.StatusInternalServerError, errorResponse{
			Error:     "Internal server error",
			Message:   "Something went wrong",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	status := http.StatusInternalServerError
	kind := "Internal server error"

	switch berr.Code {
	case errors.INVALID_INPUT:
		status, kind = http.StatusBadRequest, "Invalid request"
	case errors.INVALID_AMOUNT:
		status, kind = http.StatusBadRequest, "Invalid amount"
	case errors.INVALID_ADDRESS:
		status, kind = http.StatusBadRequest, "Invalid recipient address"
		if berr.Context["field"] == "source" {
			kind = "Invalid source account address"
		}
	case errors.ACCOUNT_NOT_FOUND:
		status, kind = http.StatusNotFound, "Account not found"
	case errors.GATEWAY_UNAVAILABLE:
		status, kind = http.StatusBadGateway, "Ledger gateway unavailable"
	case errors.SUBMISSION_REJECTED:
		status, kind = http.StatusInternalServerError, "Transaction submission failed"
	case errors.TRANSACTION_BUILD_FAILED:
		status, kind = http.StatusInternalServerError, "Transaction creation failed"
	}

	message := berr.Message
	if berr.Code == errors.SUBMISSION_REJECTED {
		if codes, ok := berr.Context["transaction_code"].(string); ok && codes != "" {
			message = fmt.Sprintf("%s (result code: %s", berr.Message, codes)
			if ops, ok := berr.Context["operation_codes"].([]string); ok && len(ops) > 0 {
				message += fmt.Sprintf(", operations: %v", ops)
			}
			message += ")"
		}
	}

	if status >= http.StatusInternalServerError {
		s.log.WithError(berr).Error("request failed")
	}
	s.renderJSON(w, status, errorResponse{Error: kind, Message: message})
}
