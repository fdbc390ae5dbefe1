// Command avm-send builds, signs and submits a single X-chain base transfer
// from one private key to one destination address. It exists to exercise
// the library end to end the way a real wallet would drive it, not as a
// production wallet CLI.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/coldtrail/utxotx/avm"
	"github.com/coldtrail/utxotx/codec"
	"github.com/coldtrail/utxotx/config"
	"github.com/coldtrail/utxotx/ids"
	"github.com/coldtrail/utxotx/keychain"
	"github.com/coldtrail/utxotx/rpcclient"
)

type cmdConfig struct {
	RPCURL      string        `long:"rpc-url" env:"AVM_SEND_RPC_URL" description:"node JSON-RPC endpoint" default:"http://127.0.0.1:9650/ext/bc/X"`
	NetworkID   uint32        `long:"network-id" env:"AVM_SEND_NETWORK_ID" description:"network ID" default:"12345"`
	PrivateKey  string        `long:"private-key" env:"AVM_SEND_PRIVATE_KEY" description:"hex-encoded secp256k1 private key" required:"true"`
	To          string        `long:"to" env:"AVM_SEND_TO" description:"destination address (cb58)" required:"true"`
	Amount      uint64        `long:"amount" env:"AVM_SEND_AMOUNT" description:"amount to send, in nAVAX" required:"true"`
	Memo        string        `long:"memo" env:"AVM_SEND_MEMO" description:"transaction memo"`
	RPS         int           `long:"rps" env:"AVM_SEND_RPS" description:"requests per second to the node, 0 disables throttling" default:"20"`
	HTTPTimeout time.Duration `long:"http-timeout" env:"AVM_SEND_HTTP_TIMEOUT" description:"HTTP timeout for RPC requests" default:"10s"`
}

func main() {
	var cfg cmdConfig

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("avm-send failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg cmdConfig, logger *zap.Logger) error {
	network, ok := config.Networks[cfg.NetworkID]
	if !ok {
		return fmt.Errorf("avm-send: unconfigured network ID %d", cfg.NetworkID)
	}

	priv, err := loadPrivateKey(cfg.PrivateKey)
	if err != nil {
		return fmt.Errorf("avm-send: load private key: %w", err)
	}
	kc := keychain.NewMemKeyChain(priv)
	from := priv.Address()

	to, err := parseAddress(cfg.To)
	if err != nil {
		return fmt.Errorf("avm-send: parse --to: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	transport := rpcclient.NewHTTPTransport(cfg.RPCURL, httpClient)
	rpc := rpcclient.New(transport, cfg.RPS, 3, 500*time.Millisecond)

	client, err := avm.New(rpc, network)
	if err != nil {
		return fmt.Errorf("avm-send: init avm client: %w", err)
	}

	avaxAssetID, err := client.AVAXAssetID(ctx)
	if err != nil {
		return fmt.Errorf("avm-send: discover AVAX asset ID: %w", err)
	}
	fee, err := client.Fee(ctx)
	if err != nil {
		return fmt.Errorf("avm-send: discover fee: %w", err)
	}

	set, err := client.GetUTXOs(ctx, [][]ids.Address{{from}}, nil)
	if err != nil {
		return fmt.Errorf("avm-send: fetch UTXOs: %w", err)
	}

	asOf := uint64(time.Now().Unix())
	unsigned, owners, err := client.NewBaseTxFromUTXOs(
		set,
		[]ids.Address{from},
		[]ids.Address{to},
		[]ids.Address{from},
		avaxAssetID,
		cfg.Amount,
		avaxAssetID,
		fee,
		asOf,
		0,
		1,
		[]byte(cfg.Memo),
	)
	if err != nil {
		return fmt.Errorf("avm-send: build base tx: %w", err)
	}

	signed, err := client.Sign(unsigned, owners, kc)
	if err != nil {
		return fmt.Errorf("avm-send: sign tx: %w", err)
	}

	txID, err := client.Submit(ctx, signed, fee)
	if err != nil {
		return fmt.Errorf("avm-send: submit tx: %w", err)
	}

	logger.Info("submitted transaction",
		zap.String("txID", txID.String()),
		zap.Uint64("amount", cfg.Amount),
		zap.Uint64("fee", fee),
	)
	return nil
}

func loadPrivateKey(hexKey string) (*keychain.PrivateKey, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	priv, _ := btcec.PrivKeyFromBytes(raw)
	return keychain.NewPrivateKey(priv)
}

func parseAddress(s string) (ids.Address, error) {
	raw, err := codec.CB58Decode(s)
	if err != nil {
		return ids.Address{}, err
	}
	return ids.AddressFromBytes(raw)
}
