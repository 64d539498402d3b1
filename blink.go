// Package blink provides the core of a Stellar Blink server: building
// unsigned XLM payment transactions against live account state and relaying
// client-signed envelopes to the network. The server never holds keys and
// never signs; the requesting wallet does both.
package blink

import "context"

// Account is the slice of Horizon account state the builder needs:
// the current sequence number and, for display, the native balance.
type Account struct {
	// ID is the account's public key (G...).
	ID string

	// Sequence is the account's current sequence number as observed at
	// load time. The next transaction from this account uses Sequence+1.
	Sequence int64

	// NativeBalance is the XLM balance as a decimal string, or empty if
	// the account holds no native balance entry.
	NativeBalance string
}

// TransferRequest describes one native-asset payment to be built.
type TransferRequest struct {
	// Source is the paying account (G...). Must pass address validation.
	Source string

	// Destination is the receiving account (G...). Must pass address validation.
	Destination string

	// Amount is the XLM amount as a decimal string, e.g. "1.5".
	Amount string

	// Memo is an optional text memo, at most 28 bytes. When empty no memo
	// is attached to the transaction.
	Memo string
}

// SubmissionResult is the normalized outcome of one transaction submission.
// It lives for the duration of a single request; nothing is persisted.
type SubmissionResult struct {
	// Hash is the transaction hash as hex.
	Hash string

	// Ledger is the ledger sequence the transaction was included in.
	Ledger int32

	// Successful reports whether the network applied the transaction.
	Successful bool

	// ResultXDR is the raw transaction result, base64 XDR.
	ResultXDR string
}

// LedgerGateway is the narrow contract against the external ledger-access
// service (Horizon). Implementations perform one outbound call per method
// and no retries; tests substitute a fake.
type LedgerGateway interface {
	// LoadAccount fetches current account state for the given account ID.
	LoadAccount(ctx context.Context, accountID string) (Account, error)

	// SubmitTransaction forwards a signed base64 XDR envelope to the
	// network and returns the normalized result.
	SubmitTransaction(ctx context.Context, signedXDR string) (SubmissionResult, error)
}
