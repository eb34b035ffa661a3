// Package scanner periodically snapshots the unspent outputs of a fixed address set.
package scanner

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	UTXOSource interface {
		UTXOs(ctx context.Context, addresses []string, afterTxID string, maxTxs int) ([]model.UTXO, error)
	}
	SnapshotWriter interface {
		InsertUTXOs(ctx context.Context, utxos []model.UTXO) error
		InsertAddressScans(ctx context.Context, scans []model.AddressScan) error
	}
	SnapshotBatcher interface {
		Start(ctx context.Context)
		Stop()
		Add(ctx context.Context, item model.AddressSnapshot) error
	}
	Metrics interface {
		ObserveScan(err error, utxos int, value uint64, started time.Time)
		ObserveFlush(snapshots int, err error, started time.Time)
	}
)
