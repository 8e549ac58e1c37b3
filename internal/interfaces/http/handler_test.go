package httpinterface

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/pkg/wallet"
)

// stubWalletService returns canned values, or err from every method when set.
type stubWalletService struct {
	err     error
	account *application.AccountInfo
	address string
	balance *application.BalanceInfo
	entry   *application.LedgerEntryInfo
	entries []application.LedgerEntryInfo
	txHex   string
	txid    string
	value   decimal.Decimal
}

func (s *stubWalletService) CreateAccount(
	_ context.Context, _, _ string,
) (*application.AccountInfo, error) {
	return s.account, s.err
}

func (s *stubWalletService) IssueAddress(
	_ context.Context, _ string,
) (string, error) {
	return s.address, s.err
}

func (s *stubWalletService) GetBalance(
	_ context.Context, _ string,
) (*application.BalanceInfo, error) {
	return s.balance, s.err
}

func (s *stubWalletService) ListAddresses(
	_ context.Context, _ string,
) ([]string, error) {
	return []string{s.address}, s.err
}

func (s *stubWalletService) ListAllAddresses(_ context.Context) ([]string, error) {
	return []string{s.address}, s.err
}

func (s *stubWalletService) ListLedgerEntries(
	_ context.Context, _ string,
) ([]application.LedgerEntryInfo, error) {
	return s.entries, s.err
}

func (s *stubWalletService) Withdraw(
	_ context.Context, _ string, _ uint64,
) (*application.LedgerEntryInfo, error) {
	return s.entry, s.err
}

func (s *stubWalletService) Deposit(
	_ context.Context, _ string, _ decimal.Decimal,
) (*application.LedgerEntryInfo, error) {
	return s.entry, s.err
}

func (s *stubWalletService) TransferFromAddress(
	_ context.Context, _, _, _ string, _ uint64,
) (string, error) {
	return s.txHex, s.err
}

func (s *stubWalletService) TransferFromMaster(
	_ context.Context, _, _ string, _ uint64,
) (string, error) {
	return s.txHex, s.err
}

func (s *stubWalletService) CashOut(
	_ context.Context, _ string, _ uint64,
) (string, error) {
	return s.txHex, s.err
}

func (s *stubWalletService) GenMnemonic(_ context.Context) ([]string, error) {
	return []string{"abandon", "ability"}, s.err
}

func (s *stubWalletService) FiatValue(
	_ context.Context, _ uint64,
) (decimal.Decimal, error) {
	return s.value, s.err
}

func (s *stubWalletService) BroadcastTransaction(
	_ context.Context, _ string,
) (string, error) {
	return s.txid, s.err
}

func doRequest(
	t *testing.T, svc application.WalletService,
	method, target string, body interface{},
) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	NewRouter(svc).ServeHTTP(rec, req)
	return rec
}

func TestCreateAccountHandler(t *testing.T) {
	svc := &stubWalletService{
		account: &application.AccountInfo{
			AccountID:      "abc",
			SequenceNumber: 1,
			FirstName:      "Satoshi",
			LastName:       "Nakamoto",
		},
	}

	rec := doRequest(t, svc, http.MethodPost, "/v1/account", map[string]string{
		"firstName": "Satoshi", "lastName": "Nakamoto",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var payload accountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "abc", payload.AccountID)
	assert.Equal(t, uint32(1), payload.SequenceNumber)
}

func TestCreateAccountHandlerRejectsMissingName(t *testing.T) {
	rec := doRequest(
		t, &stubWalletService{}, http.MethodPost, "/v1/account",
		map[string]string{"firstName": "Satoshi"},
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueAddressHandler(t *testing.T) {
	svc := &stubWalletService{address: "mkHS9ne12qx9pS9VojpwU5xtRd4T7X7ZUt"}

	rec := doRequest(t, svc, http.MethodPut, "/v1/account/abc/address", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, svc.address, payload["address"])
}

func TestGetBalanceHandler(t *testing.T) {
	svc := &stubWalletService{
		balance: &application.BalanceInfo{
			TotalBalance:  350000,
			LedgerBalance: 200000,
			ChainBalance:  150000,
		},
	}

	rec := doRequest(t, svc, http.MethodGet, "/v1/account/abc/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload balanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, int64(350000), payload.TotalBalance)
}

func TestWithdrawHandlerRejectsZeroAmount(t *testing.T) {
	rec := doRequest(
		t, &stubWalletService{}, http.MethodPost, "/v1/withdraw",
		map[string]interface{}{"accountId": "abc", "satoshis": 0},
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound, "not_found"},
		{"insufficient funds", application.ErrInsufficientFunds, http.StatusBadRequest, "invalid_request"},
		{"no funded source", application.ErrNoFundedSource, http.StatusBadRequest, "invalid_request"},
		{"price unavailable", application.ErrPriceUnavailable, http.StatusBadGateway, "unavailable"},
		{"chain lookup", application.ErrChainLookup, http.StatusBadGateway, "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(
				t, &stubWalletService{err: tt.err}, http.MethodPost, "/v1/withdraw",
				map[string]interface{}{"accountId": "abc", "satoshis": 1000},
			)
			assert.Equal(t, tt.status, rec.Code)

			var payload errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
			assert.Equal(t, tt.kind, payload.Kind)
			assert.Equal(t, tt.err.Error(), payload.Message)
		})
	}
}

func TestTransferErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid output address", wallet.ErrInvalidOutputAddress},
		{"invalid change address", wallet.ErrInvalidChangeAddress},
		{"unspents below amount plus fees", wallet.ErrInsufficientFunds},
		{"empty unspents", wallet.ErrEmptyUnspents},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(
				t, &stubWalletService{err: tt.err},
				http.MethodPost, "/v1/transfer/address",
				map[string]interface{}{
					"accountId":          "abc",
					"sourceAddress":      "mkHS9ne12qx9pS9VojpwU5xtRd4T7X7ZUt",
					"destinationAddress": "notanaddress",
					"satoshis":           1000,
				},
			)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var payload errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
			assert.Equal(t, "invalid_request", payload.Kind)
			assert.Equal(t, tt.err.Error(), payload.Message)
		})
	}
}

func TestTransferFromMasterHandler(t *testing.T) {
	svc := &stubWalletService{txHex: "deadbeef"}

	rec := doRequest(
		t, svc, http.MethodPost, "/v1/transfer/master",
		map[string]interface{}{
			"accountId":          "abc",
			"destinationAddress": "mkHS9ne12qx9pS9VojpwU5xtRd4T7X7ZUt",
			"satoshis":           1000,
		},
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "deadbeef", payload["txHex"])
}

func TestFiatValueHandler(t *testing.T) {
	svc := &stubWalletService{value: decimal.NewFromInt(25000)}

	rec := doRequest(t, svc, http.MethodGet, "/v1/value?satoshis=100000000", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, svc, http.MethodGet, "/v1/value?satoshis=notanumber", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
