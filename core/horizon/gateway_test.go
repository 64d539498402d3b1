package horizon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar-blinks/blink-server-go/errors"
)

const accountID = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"

func newFakeHorizon(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadAccount(t *testing.T) {
	srv := newFakeHorizon(t, http.StatusOK, `{
		"id": "`+accountID+`",
		"account_id": "`+accountID+`",
		"sequence": "123456789",
		"balances": [
			{"balance": "42.5000000", "asset_type": "native"}
		]
	}`)

	gw := NewGateway(srv.URL)
	account, err := gw.LoadAccount(context.Background(), accountID)
	require.NoError(t, err)

	assert.Equal(t, accountID, account.ID)
	assert.Equal(t, int64(123456789), account.Sequence)
	assert.Equal(t, "42.5000000", account.NativeBalance)
}

func TestLoadAccountNotFound(t *testing.T) {
	srv := newFakeHorizon(t, http.StatusNotFound, `{
		"type": "https://stellar.org/horizon-errors/not_found",
		"title": "Resource Missing",
		"status": 404,
		"detail": "The resource at the url requested was not found."
	}`)

	gw := NewGateway(srv.URL)
	_, err := gw.LoadAccount(context.Background(), accountID)
	require.Error(t, err)

	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.ACCOUNT_NOT_FOUND, code)
}

func TestLoadAccountTransportFailure(t *testing.T) {
	// Nothing listens here; the dial fails immediately.
	gw := NewGateway("http://127.0.0.1:1")

	_, err := gw.LoadAccount(context.Background(), accountID)
	require.Error(t, err)

	code, _ := errors.CodeOf(err)
	assert.Equal(t, errors.GATEWAY_UNAVAILABLE, code)
}

func TestSubmitTransaction(t *testing.T) {
	srv := newFakeHorizon(t, http.StatusOK, `{
		"hash": "deadbeef",
		"ledger": 98765,
		"successful": true,
		"result_xdr": "AAAAAA=="
	}`)

	gw := NewGateway(srv.URL)
	result, err := gw.SubmitTransaction(context.Background(), "AAAAsigned")
	require.NoError(t, err)

	assert.Equal(t, "deadbeef", result.Hash)
	assert.Equal(t, int32(98765), result.Ledger)
	assert.True(t, result.Successful)
	assert.Equal(t, "AAAAAA==", result.ResultXDR)
}

func TestSubmitTransactionRejected(t *testing.T) {
	srv := newFakeHorizon(t, http.StatusBadRequest, `{
		"type": "https://stellar.org/horizon-errors/transaction_failed",
		"title": "Transaction Failed",
		"status": 400,
		"extras": {
			"result_codes": {
				"transaction": "tx_failed",
				"operations": ["op_underfunded"]
			}
		}
	}`)

	gw := NewGateway(srv.URL)
	_, err := gw.SubmitTransaction(context.Background(), "AAAAsigned")
	require.Error(t, err)

	var berr *errors.BlinkError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, errors.SUBMISSION_REJECTED, berr.Code)
	assert.Equal(t, "tx_failed", berr.Context["transaction_code"])
	assert.Equal(t, []string{"op_underfunded"}, berr.Context["operation_codes"])
}

func TestSubmitTransactionHorizonErrored(t *testing.T) {
	srv := newFakeHorizon(t, http.StatusServiceUnavailable, `{
		"type": "https://stellar.org/horizon-errors/server_error",
		"title": "Internal Server Error",
		"status": 503
	}`)

	gw := NewGateway(srv.URL)
	_, err := gw.SubmitTransaction(context.Background(), "AAAAsigned")
	require.Error(t, err)

	code, _ := errors.CodeOf(err)
	assert.Equal(t, errors.GATEWAY_UNAVAILABLE, code)
}
