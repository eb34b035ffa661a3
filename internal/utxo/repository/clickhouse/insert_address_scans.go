package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
)

const insertAddressScansQuery = `
INSERT INTO utxo_address_scans (
	coin,
	network,
	address,
	captured_at,
	utxo_count,
	value
) VALUES`

// InsertAddressScans stores one row per completed address scan.
func (r *Repository) InsertAddressScans(ctx context.Context, scans []model.AddressScan) error {
	start := time.Now()
	var err error
	defer func() {
		var (
			coin    model.Coin
			network model.Network
		)
		if len(scans) > 0 {
			coin, network = scans[0].Coin, scans[0].Network
		}
		r.metrics.Observe("insert_address_scans", coin, network, err, start)
		if err == nil {
			r.metrics.ObserveRows("insert_address_scans", coin, network, len(scans))
		}
	}()

	if len(scans) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertAddressScansQuery)
	if err != nil {
		return fmt.Errorf("prepare address scans batch: %w", err)
	}

	for _, s := range scans {
		if err = batch.Append(
			string(s.Coin),
			string(s.Network),
			s.Address,
			s.CapturedAt,
			s.UTXOs,
			s.Value,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append address scan %s: %w", s.Address, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert address scans: %w", err)
	}
	return nil
}
