package httpinterface

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
)

type handler struct {
	walletSvc application.WalletService
}

// NewRouter returns the HTTP router exposing the daemon's use cases as a
// JSON API.
func NewRouter(walletSvc application.WalletService) *mux.Router {
	h := &handler{walletSvc: walletSvc}

	router := mux.NewRouter()
	router.HandleFunc("/v1/account", h.createAccount).Methods(http.MethodPost)
	router.HandleFunc("/v1/account/{id}/address", h.issueAddress).Methods(http.MethodPut)
	router.HandleFunc("/v1/account/{id}/addresses", h.listAddresses).Methods(http.MethodGet)
	router.HandleFunc("/v1/account/{id}/balance", h.getBalance).Methods(http.MethodGet)
	router.HandleFunc("/v1/account/{id}/transactions", h.listLedgerEntries).Methods(http.MethodGet)
	router.HandleFunc("/v1/addresses", h.listAllAddresses).Methods(http.MethodGet)
	router.HandleFunc("/v1/withdraw", h.withdraw).Methods(http.MethodPost)
	router.HandleFunc("/v1/deposit", h.deposit).Methods(http.MethodPost)
	router.HandleFunc("/v1/transfer/address", h.transferFromAddress).Methods(http.MethodPost)
	router.HandleFunc("/v1/transfer/master", h.transferFromMaster).Methods(http.MethodPost)
	router.HandleFunc("/v1/cashout", h.cashOut).Methods(http.MethodPost)
	router.HandleFunc("/v1/mnemonic", h.genMnemonic).Methods(http.MethodGet)
	router.HandleFunc("/v1/value", h.fiatValue).Methods(http.MethodGet)
	router.HandleFunc("/v1/tx/broadcast", h.broadcastTransaction).Methods(http.MethodPost)
	return router
}

type createAccountRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type accountResponse struct {
	AccountID      string `json:"accountId"`
	SequenceNumber uint32 `json:"sequenceNumber"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
}

func (h *handler) createAccount(res http.ResponseWriter, req *http.Request) {
	var body createAccountRequest
	if !decodeRequest(res, req, &body) {
		return
	}
	if body.FirstName == "" || body.LastName == "" {
		writeError(res, http.StatusBadRequest, "firstName and lastName are required")
		return
	}

	account, err := h.walletSvc.CreateAccount(
		req.Context(), body.FirstName, body.LastName,
	)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusCreated, accountResponse{
		AccountID:      account.AccountID,
		SequenceNumber: account.SequenceNumber,
		FirstName:      account.FirstName,
		LastName:       account.LastName,
	})
}

func (h *handler) issueAddress(res http.ResponseWriter, req *http.Request) {
	accountID := mux.Vars(req)["id"]

	address, err := h.walletSvc.IssueAddress(req.Context(), accountID)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, map[string]string{"address": address})
}

func (h *handler) listAddresses(res http.ResponseWriter, req *http.Request) {
	accountID := mux.Vars(req)["id"]

	addresses, err := h.walletSvc.ListAddresses(req.Context(), accountID)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, map[string][]string{"addresses": addresses})
}

func (h *handler) listAllAddresses(res http.ResponseWriter, req *http.Request) {
	addresses, err := h.walletSvc.ListAllAddresses(req.Context())
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, map[string][]string{"addresses": addresses})
}

type balanceResponse struct {
	TotalBalance  int64  `json:"totalBalance"`
	LedgerBalance int64  `json:"ledgerBalance"`
	ChainBalance  uint64 `json:"chainBalance"`
}

func (h *handler) getBalance(res http.ResponseWriter, req *http.Request) {
	accountID := mux.Vars(req)["id"]

	balance, err := h.walletSvc.GetBalance(req.Context(), accountID)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, balanceResponse{
		TotalBalance:  balance.TotalBalance,
		LedgerBalance: balance.LedgerBalance,
		ChainBalance:  balance.ChainBalance,
	})
}

type ledgerEntryResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Satoshis  int64           `json:"satoshis"`
	FiatValue decimal.Decimal `json:"fiatValue"`
	Timestamp int64           `json:"timestamp"`
	Status    string          `json:"status"`
}

func ledgerEntryResponseOf(entry application.LedgerEntryInfo) ledgerEntryResponse {
	return ledgerEntryResponse{
		ID:        entry.ID,
		AccountID: entry.AccountID,
		Satoshis:  entry.Satoshis,
		FiatValue: entry.FiatValue,
		Timestamp: entry.Timestamp,
		Status:    entry.Status,
	}
}

func (h *handler) listLedgerEntries(res http.ResponseWriter, req *http.Request) {
	accountID := mux.Vars(req)["id"]

	entries, err := h.walletSvc.ListLedgerEntries(req.Context(), accountID)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	payload := make([]ledgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, ledgerEntryResponseOf(entry))
	}
	writeJSON(res, http.StatusOK, map[string][]ledgerEntryResponse{
		"transactions": payload,
	})
}

type withdrawRequest struct {
	AccountID string `json:"accountId"`
	Satoshis  uint64 `json:"satoshis"`
}

func (h *handler) withdraw(res http.ResponseWriter, req *http.Request) {
	var body withdrawRequest
	if !decodeRequest(res, req, &body) {
		return
	}
	if body.Satoshis == 0 {
		writeError(res, http.StatusBadRequest, "satoshis must be positive")
		return
	}

	entry, err := h.walletSvc.Withdraw(req.Context(), body.AccountID, body.Satoshis)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, ledgerEntryResponseOf(*entry))
}

type depositRequest struct {
	AccountID  string          `json:"accountId"`
	FiatAmount decimal.Decimal `json:"fiatAmount"`
}

func (h *handler) deposit(res http.ResponseWriter, req *http.Request) {
	var body depositRequest
	if !decodeRequest(res, req, &body) {
		return
	}
	if body.FiatAmount.LessThanOrEqual(decimal.Zero) {
		writeError(res, http.StatusBadRequest, "fiatAmount must be positive")
		return
	}

	entry, err := h.walletSvc.Deposit(req.Context(), body.AccountID, body.FiatAmount)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, ledgerEntryResponseOf(*entry))
}

type transferFromAddressRequest struct {
	AccountID          string `json:"accountId"`
	SourceAddress      string `json:"sourceAddress"`
	DestinationAddress string `json:"destinationAddress"`
	Satoshis           uint64 `json:"satoshis"`
}

func (h *handler) transferFromAddress(res http.ResponseWriter, req *http.Request) {
	var body transferFromAddressRequest
	if !decodeRequest(res, req, &body) {
		return
	}

	txHex, err := h.walletSvc.TransferFromAddress(
		req.Context(),
		body.AccountID, body.SourceAddress, body.DestinationAddress,
		body.Satoshis,
	)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, map[string]string{"txHex": txHex})
}

type transferFromMasterRequest struct {
	AccountID          string `json:"accountId"`
	DestinationAddress string `json:"destinationAddress"`
	Satoshis           uint64 `json:"satoshis"`
}

func (h *handler) transferFromMaster(res http.ResponseWriter, req *http.Request) {
	var body transferFromMasterRequest
	if !decodeRequest(res, req, &body) {
		return
	}

	txHex, err := h.walletSvc.TransferFromMaster(
		req.Context(), body.AccountID, body.DestinationAddress, body.Satoshis,
	)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, map[string]string{"txHex": txHex})
}

type cashOutRequest struct {
	AccountID string `json:"accountId"`
	Satoshis  uint64 `json:"satoshis"`
}

func (h *handler) cashOut(res http.ResponseWriter, req *http.Request) {
	var body cashOutRequest
	if !decodeRequest(res, req, &body) {
		return
	}

	txHex, err := h.walletSvc.CashOut(req.Context(), body.AccountID, body.Satoshis)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, map[string]string{"txHex": txHex})
}

func (h *handler) genMnemonic(res http.ResponseWriter, req *http.Request) {
	mnemonic, err := h.walletSvc.GenMnemonic(req.Context())
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, map[string][]string{"mnemonic": mnemonic})
}

func (h *handler) fiatValue(res http.ResponseWriter, req *http.Request) {
	satoshis, err := strconv.ParseUint(req.URL.Query().Get("satoshis"), 10, 64)
	if err != nil {
		writeError(res, http.StatusBadRequest, "satoshis must be a positive integer")
		return
	}

	value, err := h.walletSvc.FiatValue(req.Context(), satoshis)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, map[string]decimal.Decimal{"value": value})
}

type broadcastRequest struct {
	TxHex string `json:"txHex"`
}

func (h *handler) broadcastTransaction(res http.ResponseWriter, req *http.Request) {
	var body broadcastRequest
	if !decodeRequest(res, req, &body) {
		return
	}
	if body.TxHex == "" {
		writeError(res, http.StatusBadRequest, "txHex is required")
		return
	}

	txid, err := h.walletSvc.BroadcastTransaction(req.Context(), body.TxHex)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, map[string]string{"txid": txid})
}

func decodeRequest(
	res http.ResponseWriter, req *http.Request, target interface{},
) bool {
	if err := json.NewDecoder(req.Body).Decode(target); err != nil {
		writeError(res, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(res http.ResponseWriter, status int, payload interface{}) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(payload); err != nil {
		log.WithError(err).Warn("response encoding failed")
	}
}
