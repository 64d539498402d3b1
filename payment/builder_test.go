package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blink "github.com/stellar-blinks/blink-server-go"
	"github.com/stellar-blinks/blink-server-go/errors"
)

const (
	sourceAddress      = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"
	destinationAddress = "GAAQCAIBAEAQCAIBAEAQCAIBAEAQCAIBAEAQCAIBAEAQCAIBAEAQDZ7H"
)

// badChecksumAddress matches ^G[A-Z0-9]{55}$ but fails strkey decode.
var badChecksumAddress = "G" + strings.Repeat("A", 55)

type fakeGateway struct {
	account   blink.Account
	loadErr   error
	loadCalls int

	submitXDR string
	result    blink.SubmissionResult
	submitErr error
}

func (f *fakeGateway) LoadAccount(_ context.Context, accountID string) (blink.Account, error) {
	f.loadCalls++
	if f.loadErr != nil {
		return blink.Account{}, f.loadErr
	}
	return f.account, nil
}

func (f *fakeGateway) SubmitTransaction(_ context.Context, signedXDR string) (blink.SubmissionResult, error) {
	f.submitXDR = signedXDR
	if f.submitErr != nil {
		return blink.SubmissionResult{}, f.submitErr
	}
	return f.result, nil
}

func decodeEnvelope(t *testing.T, envelope string) *txnbuild.Transaction {
	t.Helper()
	generic, err := txnbuild.TransactionFromXDR(envelope)
	require.NoError(t, err)
	tx, ok := generic.Transaction()
	require.True(t, ok, "envelope must not be fee bump")
	return tx
}

func TestBuildPaymentEnvelope(t *testing.T) {
	gw := &fakeGateway{account: blink.Account{ID: sourceAddress, Sequence: 100}}
	builder := NewBuilder(gw)

	before := time.Now().Unix()
	envelope, err := builder.Build(context.Background(), blink.TransferRequest{
		Source:      sourceAddress,
		Destination: destinationAddress,
		Amount:      "1.5",
	})
	require.NoError(t, err)
	require.NotEmpty(t, envelope)

	tx := decodeEnvelope(t, envelope)

	assert.Equal(t, sourceAddress, tx.SourceAccount().AccountID)
	assert.Equal(t, int64(101), tx.SourceAccount().Sequence, "sequence must be loaded sequence + 1")
	assert.Equal(t, int64(txnbuild.MinBaseFee), tx.BaseFee())

	ops := tx.Operations()
	require.Len(t, ops, 1, "exactly one payment operation")
	op, ok := ops[0].(*txnbuild.Payment)
	require.True(t, ok)
	assert.Equal(t, destinationAddress, op.Destination)
	assert.Equal(t, "1.5000000", op.Amount, "1.5 XLM is exactly 15000000 stroops")
	assert.True(t, op.Asset.IsNative())

	bounds := tx.Timebounds()
	assert.GreaterOrEqual(t, bounds.MaxTime, before+transactionTimeout)
	assert.LessOrEqual(t, bounds.MaxTime, time.Now().Unix()+transactionTimeout)

	assert.Nil(t, tx.Memo(), "no memo field when memo is omitted")
}

func TestBuildMemoHandling(t *testing.T) {
	gw := &fakeGateway{account: blink.Account{ID: sourceAddress, Sequence: 7}}
	builder := NewBuilder(gw)

	req := blink.TransferRequest{
		Source:      sourceAddress,
		Destination: destinationAddress,
		Amount:      "1",
		Memo:        "coffee money",
	}
	envelope, err := builder.Build(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, txnbuild.MemoText("coffee money"), decodeEnvelope(t, envelope).Memo())

	req.Memo = ""
	envelope, err = builder.Build(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, decodeEnvelope(t, envelope).Memo(), "empty memo means no memo, not an empty text memo")
}

func TestBuildRejectsLongMemo(t *testing.T) {
	gw := &fakeGateway{account: blink.Account{ID: sourceAddress, Sequence: 7}}
	builder := NewBuilder(gw)

	_, err := builder.Build(context.Background(), blink.TransferRequest{
		Source:      sourceAddress,
		Destination: destinationAddress,
		Amount:      "1",
		Memo:        strings.Repeat("x", 29),
	})
	require.Error(t, err)
	code, _ := errors.CodeOf(err)
	assert.Equal(t, errors.INVALID_INPUT, code)
	assert.Zero(t, gw.loadCalls, "validation failures must not hit the network")
}

func TestBuildDistinguishesInvalidAddresses(t *testing.T) {
	gw := &fakeGateway{account: blink.Account{ID: sourceAddress, Sequence: 7}}
	builder := NewBuilder(gw)

	_, err := builder.Build(context.Background(), blink.TransferRequest{
		Source:      badChecksumAddress,
		Destination: destinationAddress,
		Amount:      "1",
	})
	var berr *errors.BlinkError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, errors.INVALID_ADDRESS, berr.Code)
	assert.Equal(t, "source", berr.Context["field"])

	_, err = builder.Build(context.Background(), blink.TransferRequest{
		Source:      sourceAddress,
		Destination: badChecksumAddress,
		Amount:      "1",
	})
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, errors.INVALID_ADDRESS, berr.Code)
	assert.Equal(t, "destination", berr.Context["field"])

	assert.Zero(t, gw.loadCalls, "validation failures must not hit the network")
}

func TestBuildRejectsInvalidAmount(t *testing.T) {
	gw := &fakeGateway{account: blink.Account{ID: sourceAddress, Sequence: 7}}
	builder := NewBuilder(gw)

	for _, amount := range []string{"0", "-1", "abc", ""} {
		_, err := builder.Build(context.Background(), blink.TransferRequest{
			Source:      sourceAddress,
			Destination: destinationAddress,
			Amount:      amount,
		})
		require.Error(t, err, "amount %q", amount)
		code, _ := errors.CodeOf(err)
		assert.Equal(t, errors.INVALID_AMOUNT, code)
	}
	assert.Zero(t, gw.loadCalls)
}

func TestBuildPropagatesAccountNotFound(t *testing.T) {
	gw := &fakeGateway{loadErr: errors.New(errors.ACCOUNT_NOT_FOUND, "account does not exist on the Stellar network", nil)}
	builder := NewBuilder(gw)

	_, err := builder.Build(context.Background(), blink.TransferRequest{
		Source:      sourceAddress,
		Destination: destinationAddress,
		Amount:      "1",
	})
	require.Error(t, err)
	code, _ := errors.CodeOf(err)
	assert.Equal(t, errors.ACCOUNT_NOT_FOUND, code, "nonexistent account must surface as ACCOUNT_NOT_FOUND, not a generic error")
}

func TestBuildPropagatesGatewayFailure(t *testing.T) {
	gw := &fakeGateway{loadErr: errors.New(errors.GATEWAY_UNAVAILABLE, "failed to load account from Horizon", nil)}
	builder := NewBuilder(gw)

	_, err := builder.Build(context.Background(), blink.TransferRequest{
		Source:      sourceAddress,
		Destination: destinationAddress,
		Amount:      "1",
	})
	code, _ := errors.CodeOf(err)
	assert.Equal(t, errors.GATEWAY_UNAVAILABLE, code)
}
