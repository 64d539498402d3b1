// Package payment is the core of the Blink server: it turns a validated
// transfer request into an unsigned, fee-set, time-bounded XLM payment
// transaction and relays client-signed envelopes to the network.
package payment

import (
	"context"

	"github.com/stellar/go/txnbuild"

	blink "github.com/stellar-blinks/blink-server-go"
	"github.com/stellar-blinks/blink-server-go/core/address"
	"github.com/stellar-blinks/blink-server-go/core/amount"
	"github.com/stellar-blinks/blink-server-go/errors"
)

const (
	// transactionTimeout is the absolute inclusion deadline, in seconds,
	// stamped into every envelope. The network rejects the transaction if
	// it is not in a ledger by then; the server never rebuilds or extends.
	transactionTimeout = 300

	// maxMemoBytes is the text memo limit imposed by the ledger.
	maxMemoBytes = 28
)

// Builder constructs unsigned XLM payment envelopes. It is stateless
// between calls: each Build reads the source account's sequence number
// fresh, and concurrent builds for the same account may observe different
// sequences depending on ledger timing.
type Builder struct {
	gateway blink.LedgerGateway
}

// NewBuilder creates a Builder over the given ledger gateway.
func NewBuilder(gateway blink.LedgerGateway) *Builder {
	return &Builder{gateway: gateway}
}

// Build validates the request, loads the source account, and returns the
// unsigned transaction envelope as base64 XDR. The envelope carries exactly
// one native-asset payment operation, the minimum base fee, a 300-second
// timeout bound, and a text memo only when the request's memo is non-empty.
// Validation failures return before any network call.
func (b *Builder) Build(ctx context.Context, req blink.TransferRequest) (string, error) {
	if !address.IsValid(req.Source) {
		return "", errors.New(errors.INVALID_ADDRESS,
			"invalid source account address", nil).
			WithContext("field", "source")
	}
	if !address.IsValid(req.Destination) {
		return "", errors.New(errors.INVALID_ADDRESS,
			"invalid recipient address", nil).
			WithContext("field", "destination")
	}
	stroops, err := amount.ToStroops(req.Amount)
	if err != nil {
		return "", err
	}
	if len(req.Memo) > maxMemoBytes {
		return "", errors.New(errors.INVALID_INPUT,
			"memo must be at most 28 bytes", nil)
	}

	account, err := b.gateway.LoadAccount(ctx, req.Source)
	if err != nil {
		return "", err
	}

	params := txnbuild.TransactionParams{
		SourceAccount: &txnbuild.SimpleAccount{
			AccountID: account.ID,
			Sequence:  account.Sequence,
		},
		IncrementSequenceNum: true,
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: req.Destination,
				Amount:      amount.FromStroops(stroops),
				Asset:       txnbuild.NativeAsset{},
			},
		},
		BaseFee: txnbuild.MinBaseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(transactionTimeout),
		},
	}
	if req.Memo != "" {
		params.Memo = txnbuild.MemoText(req.Memo)
	}

	tx, err := txnbuild.NewTransaction(params)
	if err != nil {
		return "", errors.New(errors.TRANSACTION_BUILD_FAILED,
			"failed to build payment transaction", err)
	}

	envelope, err := tx.Base64()
	if err != nil {
		return "", errors.New(errors.TRANSACTION_BUILD_FAILED,
			"failed to encode transaction envelope", err)
	}
	return envelope, nil
}
