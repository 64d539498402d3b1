package payment

import (
	"context"
	"strings"

	blink "github.com/stellar-blinks/blink-server-go"
	"github.com/stellar-blinks/blink-server-go/errors"
)

// Submitter relays client-signed envelopes to the ledger gateway exactly
// once per call. It performs no retries; if the caller times out and tries
// again, duplicate detection is the ledger's responsibility.
type Submitter struct {
	gateway blink.LedgerGateway
}

// NewSubmitter creates a Submitter over the given ledger gateway.
func NewSubmitter(gateway blink.LedgerGateway) *Submitter {
	return &Submitter{gateway: gateway}
}

// Submit forwards a signed base64 XDR envelope to the network. The envelope
// is untrusted input and is not parsed here. Fails with INVALID_INPUT when
// the envelope is empty; gateway errors pass through unchanged so their
// result codes survive to the caller.
func (s *Submitter) Submit(ctx context.Context, signedXDR string) (blink.SubmissionResult, error) {
	if strings.TrimSpace(signedXDR) == "" {
		return blink.SubmissionResult{}, errors.New(errors.INVALID_INPUT,
			"signed transaction XDR is required", nil)
	}
	return s.gateway.SubmitTransaction(ctx, signedXDR)
}
