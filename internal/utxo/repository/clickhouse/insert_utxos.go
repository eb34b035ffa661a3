package clickhouse

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
)

const insertUTXOsQuery = `
INSERT INTO utxo_address_snapshots (
	coin,
	network,
	address,
	captured_at,
	txid,
	output_n,
	confirmations,
	block_height,
	fee,
	size,
	value,
	script,
	tx_time
) VALUES`

// InsertUTXOs stores UTXO snapshot rows.
func (r *Repository) InsertUTXOs(ctx context.Context, utxos []model.UTXO) error {
	start := time.Now()
	var err error
	defer func() {
		coin, network := firstUTXOLabels(utxos)
		r.metrics.Observe("insert_utxos", coin, network, err, start)
		if err == nil {
			r.metrics.ObserveRows("insert_utxos", coin, network, len(utxos))
		}
	}()

	if len(utxos) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertUTXOsQuery)
	if err != nil {
		return fmt.Errorf("prepare utxos batch: %w", err)
	}

	for _, u := range utxos {
		if err = batch.Append(
			string(u.Coin),
			string(u.Network),
			u.Address,
			u.CapturedAt,
			u.TxID,
			u.OutputN,
			u.Confirmations,
			u.BlockHeight,
			u.Fee,
			u.Size,
			u.Value,
			hex.EncodeToString(u.Script),
			optionalTime(u.Date),
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append utxo %s:%d: %w", u.TxID, u.OutputN, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert utxos: %w", err)
	}
	return nil
}

func firstUTXOLabels(utxos []model.UTXO) (model.Coin, model.Network) {
	if len(utxos) == 0 {
		return "", ""
	}
	return utxos[0].Coin, utxos[0].Network
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
