package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/custodia-network/custodia-daemon/pkg/explorer"
	"github.com/custodia-network/custodia-daemon/pkg/explorer/insight"
	"github.com/custodia-network/custodia-daemon/pkg/pricefeeder"
	coinmarketcapfeeder "github.com/custodia-network/custodia-daemon/pkg/pricefeeder/coinmarketcap"
)

const (
	// HTTPListeningPortKey is the port where the HTTP interface will listen on
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// ExplorerEndpointKey is the endpoint where the Insight REST API is listening
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// PriceEndpointKey is the endpoint of the price ticker REST API
	PriceEndpointKey = "PRICE_ENDPOINT"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the network to use. Either "mainnet", "testnet3" or "regtest"
	NetworkKey = "NETWORK"
	// MnemonicKey is the mnemonic of the master private key of the daemon's wallet
	MnemonicKey = "MNEMONIC"
	// PayoutAddressKey is the address cash-out transactions pay to
	PayoutAddressKey = "PAYOUT_ADDRESS"
	// SatsPerByteKey is the fee rate used when building transactions
	SatsPerByteKey = "SATS_PER_BYTE"
	// MasterPoolSizeKey is the number of treasury addresses derived under the reserved account
	MasterPoolSizeKey = "MASTER_POOL_SIZE"
	// BaseAssetKey is the ticker symbol of the custodied asset
	BaseAssetKey = "BASE_ASSET"
	// QuoteCurrencyKey is the fiat currency ledger valuations are expressed in
	QuoteCurrencyKey = "QUOTE_CURRENCY"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("custodia-daemon", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("CUSTODIA")
	vip.AutomaticEnv()

	vip.SetDefault(HTTPListeningPortKey, 8000)
	vip.SetDefault(ExplorerEndpointKey, "https://insight.bitpay.com/api")
	vip.SetDefault(PriceEndpointKey, "https://api.coinmarketcap.com/v1")
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NetworkKey, "mainnet")
	vip.SetDefault(SatsPerByteKey, 2)
	vip.SetDefault(MasterPoolSizeKey, 10)
	vip.SetDefault(BaseAssetKey, "BTC")
	vip.SetDefault(QuoteCurrencyKey, "USD")

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the given key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

//GetNetwork ...
func GetNetwork() *chaincfg.Params {
	switch vip.GetString(NetworkKey) {
	case chaincfg.RegressionNetParams.Name:
		return &chaincfg.RegressionNetParams
	case chaincfg.TestNet3Params.Name:
		return &chaincfg.TestNet3Params
	default:
		return &chaincfg.MainNetParams
	}
}

//GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

//GetDbDir ...
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

//GetExplorer ...
func GetExplorer() (explorer.Service, error) {
	return insight.NewService(GetString(ExplorerEndpointKey))
}

//GetPriceSource ...
func GetPriceSource() pricefeeder.PriceSource {
	return coinmarketcapfeeder.NewService(GetString(PriceEndpointKey))
}

// GetMnemonic returns the currently set mnemonic
func GetMnemonic() []string {
	var mnemonic []string
	if vip.GetString(MnemonicKey) != "" {
		mnemonic = strings.Split(vip.GetString(MnemonicKey), " ")
	}

	return mnemonic
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	networkName := GetString(NetworkKey)
	if networkName != chaincfg.MainNetParams.Name &&
		networkName != chaincfg.TestNet3Params.Name &&
		networkName != chaincfg.RegressionNetParams.Name {
		return fmt.Errorf(
			"network must be one of '%s', '%s' or '%s'",
			chaincfg.MainNetParams.Name,
			chaincfg.TestNet3Params.Name,
			chaincfg.RegressionNetParams.Name,
		)
	}

	explorerEndpoint := GetString(ExplorerEndpointKey)
	if _, err := url.Parse(explorerEndpoint); err != nil {
		return fmt.Errorf("explorer endpoint is not a valid url: %s", err)
	}

	priceEndpoint := GetString(PriceEndpointKey)
	if _, err := url.Parse(priceEndpoint); err != nil {
		return fmt.Errorf("price endpoint is not a valid url: %s", err)
	}

	if GetInt(SatsPerByteKey) <= 0 {
		return fmt.Errorf("fee rate must be a positive number of sats per byte")
	}

	if GetInt(MasterPoolSizeKey) <= 0 {
		return fmt.Errorf("treasury pool size must be positive")
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
