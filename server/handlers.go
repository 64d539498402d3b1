package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	blink "github.com/stellar-blinks/blink-server-go"
	"github.com/stellar-blinks/blink-server-go/config"
	"github.com/stellar-blinks/blink-server-go/core/amount"
)

// recipientPattern is the client-side shape check advertised in action
// parameters. Full checksum validation happens server-side on POST.
const recipientPattern = "^G[A-Z0-9]{55}$"

type actionParameter struct {
	Name     string  `json:"name"`
	Label    string  `json:"label"`
	Type     string  `json:"type"`
	Required bool    `json:"required"`
	Pattern  string  `json:"pattern,omitempty"`
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
}

type action struct {
	Type       string            `json:"type"`
	Label      string            `json:"label"`
	Href       string            `json:"href"`
	Parameters []actionParameter `json:"parameters"`
}

type actionDescriptor struct {
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Label       string `json:"label"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Links       struct {
		Actions []action `json:"actions"`
	} `json:"links"`
}

type transferRequest struct {
	Amount    string `json:"amount"`
	Recipient string `json:"recipient"`
	Account   string `json:"account"`
	Memo      string `json:"memo"`
}

type transferMetadata struct {
	Amount        string `json:"amount"`
	AmountStroops int64  `json:"amountStroops"`
	Recipient     string `json:"recipient"`
	Source        string `json:"source"`
	Fee           string `json:"fee"`
	Network       string `json:"network"`
	Memo          string `json:"memo"`
}

type transferResponse struct {
	Type        string           `json:"type"`
	Message     string           `json:"message"`
	Transaction string           `json:"transaction"`
	Metadata    transferMetadata `json:"metadata"`
}

type submitRequest struct {
	SignedTransaction string `json:"signedTransaction"`
}

type submitResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Hash     string `json:"hash"`
	Status   string `json:"status"`
	Metadata struct {
		Network   string `json:"network"`
		Timestamp string `json:"timestamp"`
	} `json:"metadata"`
}

func recipientParam() actionParameter {
	return actionParameter{
		Name:     "recipient",
		Label:    "Recipient Stellar Address",
		Type:     "text",
		Required: true,
		Pattern:  recipientPattern,
	}
}

// handleActionMetadata renders the Blink action descriptor: three preset
// send amounts plus one parameterized custom-amount action.
func (s *Server) handleActionMetadata(w http.ResponseWriter, r *http.Request) {
	base := requestBaseURL(r)

	desc := actionDescriptor{
		Type:  "action",
		Icon:  base + "/actions/transfer/icon",
		Label: "Send XLM",
		Title: "Transfer XLM on Stellar",
		Description: "Send XLM instantly to any Stellar address. " +
			"Choose from preset amounts or enter a custom amount.",
	}

	for _, preset := range []string{"1", "5", "10"} {
		desc.Links.Actions = append(desc.Links.Actions, action{
			Type:       "transaction",
			Label:      preset + " XLM",
			Href:       fmt.Sprintf("/actions/transfer?amount=%s&recipient={recipient}", preset),
			Parameters: []actionParameter{recipientParam()},
		})
	}
	desc.Links.Actions = append(desc.Links.Actions, action{
		Type:  "transaction",
		Label: "Custom Amount",
		Href:  "/actions/transfer?amount={amount}&recipient={recipient}&memo={memo}",
		Parameters: []actionParameter{
			{
				Name:     "amount",
				Label:    "Amount in XLM",
				Type:     "number",
				Required: true,
				Min:      0.0000001,
				Max:      1000000,
			},
			recipientParam(),
			{
				Name:  "memo",
				Label: "Memo (Optional)",
				Type:  "text",
			},
		},
	})

	s.renderJSON(w, http.StatusOK, desc)
}

// handleBuildTransfer builds an unsigned payment envelope for the caller's
// wallet to sign.
func (s *Server) handleBuildTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.renderErrorResponse(w, http.StatusBadRequest, "Invalid request body",
			"Request body must be valid JSON")
		return
	}
	if req.Amount == "" || req.Recipient == "" || req.Account == "" {
		s.renderErrorResponse(w, http.StatusBadRequest, "Missing required fields",
			"Amount, recipient, and account are required")
		return
	}

	envelope, err := s.builder.Build(r.Context(), blink.TransferRequest{
		Source:      req.Account,
		Destination: req.Recipient,
		Amount:      req.Amount,
		Memo:        req.Memo,
	})
	if err != nil {
		s.renderError(w, err)
		return
	}

	// Build already validated the amount; conversion cannot fail here.
	stroops, _ := amount.ToStroops(req.Amount)

	memo := req.Memo
	if memo == "" {
		memo = "None"
	}

	s.renderJSON(w, http.StatusOK, transferResponse{
		Type:        "transaction",
		Message:     fmt.Sprintf("Transfer %s XLM to %s", req.Amount, req.Recipient),
		Transaction: envelope,
		Metadata: transferMetadata{
			Amount:        req.Amount,
			AmountStroops: stroops,
			Recipient:     req.Recipient,
			Source:        req.Account,
			Fee:           "100",
			Network:       s.cfg.Network.Name,
			Memo:          memo,
		},
	})
}

// handleSubmit relays a signed envelope to the Stellar network.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.renderErrorResponse(w, http.StatusBadRequest, "Invalid request body",
			"Request body must be valid JSON")
		return
	}
	if req.SignedTransaction == "" {
		s.renderErrorResponse(w, http.StatusBadRequest, "Missing signed transaction",
			"Signed transaction XDR is required")
		return
	}

	result, err := s.submitter.Submit(r.Context(), req.SignedTransaction)
	if err != nil {
		s.renderError(w, err)
		return
	}

	status := "confirmed"
	if !result.Successful {
		status = "failed"
	}

	resp := submitResponse{
		Success: true,
		Message: "Transaction submitted successfully",
		Hash:    result.Hash,
		Status:  status,
	}
	resp.Metadata.Network = s.cfg.Network.Name
	resp.Metadata.Timestamp = time.Now().UTC().Format(time.RFC3339)

	s.renderJSON(w, http.StatusOK, resp)
}

// handleHealth reports liveness and the configured network.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.renderJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"network":   s.cfg.Network.Name,
	})
}

// handleRoot describes the service and its endpoints.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.renderJSON(w, http.StatusOK, map[string]any{
		"service":     serviceName,
		"description": "Backend service for Stellar XLM transfer Blinks",
		"version":     config.BlinkVersion,
		"endpoints": map[string]string{
			"health":   "/health",
			"metrics":  "/metrics",
			"transfer": "/actions/transfer",
		},
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": fmt.Sprintf("The route %s does not exist", r.URL.Path),
		"availableRoutes": []string{
			"/health",
			"/actions/transfer",
			"/actions/transfer/icon",
			"/actions/transfer/preview",
			"/actions/transfer/submit",
		},
	})
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host
}
