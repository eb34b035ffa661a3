package clickhouse

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
)

const addressUTXOsQuery = `
SELECT
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
FROM utxo_address_snapshots FINAL
WHERE coin = ? AND network = ? AND address = ?
	AND captured_at = (
		SELECT max(captured_at)
		FROM utxo_address_scans
		WHERE coin = ? AND network = ? AND address = ?
	)
ORDER BY block_height ASC NULLS LAST, txid ASC, output_n ASC`

// AddressUTXOs returns the UTXOs of the latest completed scan of address.
func (r *Repository) AddressUTXOs(ctx context.Context, coin model.Coin, network model.Network, address string) (_ []model.UTXO, err error) {
	start := time.Now()
	var utxos []model.UTXO
	defer func() {
		r.metrics.Observe("address_utxos", coin, network, err, start)
		if err == nil {
			r.metrics.ObserveRows("address_utxos", coin, network, len(utxos))
		}
	}()

	rows, err := r.conn.Query(ctx, addressUTXOsQuery,
		string(coin), string(network), address,
		string(coin), string(network), address,
	)
	if err != nil {
		return nil, fmt.Errorf("query address utxos: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	utxos = make([]model.UTXO, 0)
	for rows.Next() {
		var (
			u       = model.UTXO{Coin: coin, Network: network}
			script  string
			txTime  *time.Time
			scanErr error
		)
		if scanErr = rows.Scan(
			&u.Address,
			&u.CapturedAt,
			&u.TxID,
			&u.OutputN,
			&u.Confirmations,
			&u.BlockHeight,
			&u.Fee,
			&u.Size,
			&u.Value,
			&script,
			&txTime,
		); scanErr != nil {
			return nil, fmt.Errorf("scan address utxo: %w", scanErr)
		}
		if script != "" {
			if u.Script, scanErr = hex.DecodeString(script); scanErr != nil {
				return nil, fmt.Errorf("decode script of %s:%d: %w", u.TxID, u.OutputN, scanErr)
			}
		}
		if txTime != nil {
			u.Date = txTime.UTC()
		}
		u.CapturedAt = u.CapturedAt.UTC()
		utxos = append(utxos, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address utxos: %w", err)
	}
	return utxos, nil
}
