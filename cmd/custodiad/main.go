package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/custodia-network/custodia-daemon/config"
	"github.com/custodia-network/custodia-daemon/internal/core/application"
	dbbadger "github.com/custodia-network/custodia-daemon/internal/infrastructure/storage/db/badger"
	httpinterface "github.com/custodia-network/custodia-daemon/internal/interfaces/http"
	"github.com/custodia-network/custodia-daemon/pkg/wallet"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	mnemonic := config.GetMnemonic()
	if len(mnemonic) <= 0 {
		log.Panic("a signing mnemonic must be provided through the config")
	}

	masterWallet, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		SigningMnemonic: mnemonic,
		Net:             config.GetNetwork(),
	})
	if err != nil {
		log.WithError(err).Panic("error while initializing the master wallet")
	}

	payoutAddress := config.GetString(config.PayoutAddressKey)
	if payoutAddress == "" {
		log.Panic("a payout address must be provided through the config")
	}

	dbManager, err := dbbadger.NewDbManager(config.GetDbDir(), nil)
	if err != nil {
		log.WithError(err).Panic("error while opening the database")
	}
	defer dbManager.Close()

	explorerSvc, err := config.GetExplorer()
	if err != nil {
		log.WithError(err).Panic("error while connecting to the explorer")
	}

	walletSvc := application.NewWalletService(application.WalletServiceOpts{
		Wallet:             masterWallet,
		AccountRepository:  dbbadger.NewAccountRepositoryImpl(dbManager),
		LedgerRepository:   dbbadger.NewLedgerRepositoryImpl(dbManager),
		SequenceRepository: dbManager,
		ExplorerSvc:        explorerSvc,
		PriceSource:        config.GetPriceSource(),
		Net:                config.GetNetwork(),
		PayoutAddress:      payoutAddress,
		SatsPerByte:        uint64(config.GetInt(config.SatsPerByteKey)),
		MasterPoolSize:     uint32(config.GetInt(config.MasterPoolSizeKey)),
		BaseAsset:          config.GetString(config.BaseAssetKey),
		QuoteCurrency:      config.GetString(config.QuoteCurrencyKey),
	})

	address := fmt.Sprintf(":%d", config.GetInt(config.HTTPListeningPortKey))
	server := &http.Server{
		Addr:         address,
		Handler:      httpinterface.NewRouter(walletSvc),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("HTTP interface is listening on " + address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Panic("error listening on HTTP interface")
		}
	}()
	defer server.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("exiting")
}
