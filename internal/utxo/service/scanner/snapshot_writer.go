package scanner

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
)

// snapshotWriter persists a flushed batch of snapshots. Rows go in before
// the scan markers so a reader never sees a scan without its rows.
type snapshotWriter struct {
	writer SnapshotWriter
}

func (w snapshotWriter) flush(ctx context.Context, snapshots []model.AddressSnapshot) error {
	var utxos []model.UTXO
	scans := make([]model.AddressScan, 0, len(snapshots))
	for _, snapshot := range snapshots {
		utxos = append(utxos, snapshot.UTXOs...)
		scans = append(scans, snapshot.Scan)
	}

	if len(utxos) > 0 {
		if err := w.writer.InsertUTXOs(ctx, utxos); err != nil {
			return fmt.Errorf("insert utxos: %w", err)
		}
	}
	if err := w.writer.InsertAddressScans(ctx, scans); err != nil {
		return fmt.Errorf("insert address scans: %w", err)
	}
	return nil
}
