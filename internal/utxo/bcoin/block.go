package bcoin

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/pkg/safe"
)

// NormalizeBlock converts a block record. With parseTransactions set, only the requested page of
// transactions is normalized; otherwise every transaction hash is listed.
func (n *Normalizer) NormalizeBlock(rec BlockRecord, parseTransactions bool, page, limit uint32) (model.Block, error) {
	if page < 1 || limit < 1 {
		return model.Block{}, fmt.Errorf("%w: page %d and limit %d must be at least 1", ErrInvalidArgument, page, limit)
	}
	if err := rec.validate(); err != nil {
		return model.Block{}, err
	}

	total, err := safe.Uint32(len(rec.Txs))
	if err != nil {
		return model.Block{}, fmt.Errorf("block %s tx count: %w", rec.Hash, err)
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	block := model.Block{
		Hash:          rec.Hash,
		Height:        safe.NonNegative(rec.Height),
		Depth:         safe.NonNegative(rec.Depth),
		Version:       rec.Version,
		PrevBlockHash: rec.PrevBlock,
		MerkleRoot:    rec.MerkleRoot,
		Bits:          rec.Bits,
		Nonce:         rec.Nonce,
		TotalTxs:      total,
		Page:          page,
		Pages:         pages,
		Limit:         limit,
	}
	if rec.Time > 0 {
		block.Timestamp = time.Unix(rec.Time, 0).UTC()
	}

	if !parseTransactions {
		block.TxIDs = make([]string, 0, len(rec.Txs))
		for _, tx := range rec.Txs {
			block.TxIDs = append(block.TxIDs, tx.Hash)
		}
		return block, nil
	}

	start := uint64(page-1) * uint64(limit)
	end := min(start+uint64(limit), uint64(total))
	block.Transactions = make([]model.Transaction, 0)
	for i := start; i < end; i++ {
		txRec := rec.Txs[i]
		txRec.Confirmations = rec.Depth
		txRec.Time = rec.Time
		height := rec.Height
		txRec.Height = &height
		hash := rec.Hash
		txRec.Block = &hash

		tx, err := n.Normalize(txRec)
		if err != nil {
			return model.Block{}, fmt.Errorf("block %s: %w", rec.Hash, err)
		}
		block.Transactions = append(block.Transactions, tx)
	}
	return block, nil
}
