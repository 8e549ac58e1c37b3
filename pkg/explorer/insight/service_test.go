package insight

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/sync", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"finished"}`)
	})
	mux.HandleFunc("/addr/addr1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"addrStr":"addr1","balanceSat":150000}`)
	})
	mux.HandleFunc("/addr/addr2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"addrStr":"addr2","balanceSat":50000}`)
	})
	mux.HandleFunc("/addr/addr1/utxo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"txid":"aa11","vout":0,"satoshis":100000,"scriptPubKey":"76a914000000000000000000000000000000000000000088ac","confirmations":6},
			{"txid":"bb22","vout":1,"satoshis":50000,"scriptPubKey":"76a914000000000000000000000000000000000000000088ac","confirmations":0}
		]`)
	})
	mux.HandleFunc("/addr/addr2/utxo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/addr/unknown", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `address not found`)
	})
	mux.HandleFunc("/tx/send", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"txid":"cc33"}`)
	})
	return httptest.NewServer(mux)
}

func TestGetBalance(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	service, err := NewService(server.URL)
	require.NoError(t, err)

	balance, err := service.GetBalance("addr1")
	require.NoError(t, err)
	assert.Equal(t, uint64(150000), balance)
}

func TestGetBalancesForAddresses(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	service, err := NewService(server.URL)
	require.NoError(t, err)

	balances, err := service.GetBalancesForAddresses([]string{"addr1", "addr2"})
	require.NoError(t, err)
	assert.Equal(t, uint64(150000), balances["addr1"])
	assert.Equal(t, uint64(50000), balances["addr2"])
}

func TestFailingGetBalancesForAddresses(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	service, err := NewService(server.URL)
	require.NoError(t, err)

	_, err = service.GetBalancesForAddresses([]string{"addr1", "unknown"})
	assert.Error(t, err)
}

func TestGetUnspents(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	service, err := NewService(server.URL)
	require.NoError(t, err)

	unspents, err := service.GetUnspents("addr1")
	require.NoError(t, err)
	require.Len(t, unspents, 2)
	assert.Equal(t, "aa11", unspents[0].Hash())
	assert.Equal(t, uint32(0), unspents[0].Index())
	assert.Equal(t, uint64(100000), unspents[0].Value())
	assert.True(t, unspents[0].IsConfirmed())
	assert.False(t, unspents[1].IsConfirmed())
}

func TestGetUnspentsForAddresses(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	service, err := NewService(server.URL)
	require.NoError(t, err)

	unspents, err := service.GetUnspentsForAddresses([]string{"addr1", "addr2"})
	require.NoError(t, err)
	assert.Len(t, unspents, 2)
}

func TestBroadcastTransaction(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	service, err := NewService(server.URL)
	require.NoError(t, err)

	txid, err := service.BroadcastTransaction("0100000001...")
	require.NoError(t, err)
	assert.Equal(t, "cc33", txid)
}
