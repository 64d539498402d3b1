// Package horizon implements blink.LedgerGateway against a Horizon server.
package horizon

import (
	"context"
	"net/http"
	"time"

	"github.com/stellar/go-stellar-sdk/clients/horizonclient"

	blink "github.com/stellar-blinks/blink-server-go"
	"github.com/stellar-blinks/blink-server-go/errors"
)

const defaultTimeout = 30 * time.Second

// Gateway performs one outbound Horizon call per method. It holds no state
// beyond the client configured at construction and never retries; sequence
// conflicts and duplicate submissions are the ledger's to arbitrate.
type Gateway struct {
	client *horizonclient.Client
}

// NewGateway creates a LedgerGateway backed by the given Horizon URL.
func NewGateway(horizonURL string) *Gateway {
	return &Gateway{
		client: &horizonclient.Client{
			HorizonURL: horizonURL,
			HTTP:       &http.Client{Timeout: defaultTimeout},
		},
	}
}

// LoadAccount fetches the current state of a Stellar account.
func (g *Gateway) LoadAccount(_ context.Context, accountID string) (blink.Account, error) {
	detail, err := g.client.AccountDetail(horizonclient.AccountRequest{
		AccountID: accountID,
	})
	if err != nil {
		if horizonclient.IsNotFoundError(err) {
			return blink.Account{}, errors.New(errors.ACCOUNT_NOT_FOUND,
				"account does not exist on the Stellar network", err).
				WithContext("account", accountID)
		}
		return blink.Account{}, errors.New(errors.GATEWAY_UNAVAILABLE,
			"failed to load account from Horizon", err)
	}

	seq, err := detail.GetSequenceNumber()
	if err != nil {
		return blink.Account{}, errors.New(errors.GATEWAY_UNAVAILABLE,
			"Horizon returned an unparseable sequence number", err)
	}

	account := blink.Account{
		ID:       detail.AccountID,
		Sequence: seq,
	}
	for _, b := range detail.Balances {
		if b.Type == "native" {
			account.NativeBalance = b.Balance
			break
		}
	}
	return account, nil
}

// SubmitTransaction forwards a signed base64 XDR envelope to Horizon and
// normalizes the response. A Horizon-reported rejection becomes
// SUBMISSION_REJECTED carrying the verbatim result codes; anything without
// a structured response becomes GATEWAY_UNAVAILABLE.
func (g *Gateway) SubmitTransaction(_ context.Context, signedXDR string) (blink.SubmissionResult, error) {
	tx, err := g.client.SubmitTransactionXDR(signedXDR)
	if err != nil {
		hErr := horizonclient.GetError(err)
		if hErr == nil {
			return blink.SubmissionResult{}, errors.New(errors.GATEWAY_UNAVAILABLE,
				"failed to reach Horizon", err)
		}
		if hErr.Problem.Status >= http.StatusInternalServerError {
			return blink.SubmissionResult{}, errors.New(errors.GATEWAY_UNAVAILABLE,
				"Horizon errored while submitting the transaction", hErr)
		}

		berr := errors.New(errors.SUBMISSION_REJECTED,
			"transaction rejected by the Stellar network", hErr)
		if codes, cErr := hErr.ResultCodes(); cErr == nil && codes != nil {
			berr.WithContext("transaction_code", codes.TransactionCode)
			berr.WithContext("operation_codes", codes.OperationCodes)
		}
		return blink.SubmissionResult{}, berr
	}

	return blink.SubmissionResult{
		Hash:       tx.Hash,
		Ledger:     tx.Ledger,
		Successful: tx.Successful,
		ResultXDR:  tx.ResultXdr,
	}, nil
}
