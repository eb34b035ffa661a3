// Package transport exposes the bcoin node adapter over a JSON HTTP API.
package transport

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/bcoin"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	NodeClient interface {
		BlockCount(ctx context.Context) (uint64, error)
		EstimateFee(ctx context.Context, blocks int) (btcutil.Amount, bool, error)
		Transaction(ctx context.Context, txID string) (model.Transaction, error)
		RawTransaction(ctx context.Context, txID string) (string, error)
		Transactions(ctx context.Context, addresses []string, afterTxID string, maxTxs int) ([]model.Transaction, error)
		UTXOs(ctx context.Context, addresses []string, afterTxID string, maxTxs int) ([]model.UTXO, error)
		IsSpent(ctx context.Context, txID string, index uint32) (bool, error)
		SendRawTransaction(ctx context.Context, rawHex string) (bcoin.BroadcastResult, error)
		Mempool(ctx context.Context) ([]string, error)
		Block(ctx context.Context, id string, parseTransactions bool, page, limit uint32) (model.Block, error)
	}
	// SnapshotReader serves UTXO snapshots captured by the scanner.
	SnapshotReader interface {
		AddressUTXOs(ctx context.Context, coin model.Coin, network model.Network, address string) ([]model.UTXO, error)
	}
)
