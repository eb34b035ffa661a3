package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
)

// SpendSource selects where the projector takes spend status from.
type SpendSource string

const (
	// SpendSourceBatch trusts the status computed by ResolveSpends.
	SpendSourceBatch SpendSource = "batch"
	// SpendSourceNode asks the node about every candidate output.
	SpendSourceNode SpendSource = "node"
)

// ErrUnknownSpendSource is returned for an unsupported SpendSource.
var ErrUnknownSpendSource = errors.New("unknown spend source")

// UTXOProjector turns resolved transactions into UTXO records.
type UTXOProjector struct {
	source  SpendSource
	checker SpendChecker
}

// NewUTXOProjector creates a projector. An empty source selects SpendSourceBatch; SpendSourceNode
// requires a checker.
func NewUTXOProjector(source SpendSource, checker SpendChecker) (*UTXOProjector, error) {
	switch source {
	case "", SpendSourceBatch:
		source = SpendSourceBatch
	case SpendSourceNode:
		if checker == nil {
			return nil, fmt.Errorf("spend source %q requires a spend checker", source)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpendSource, source)
	}
	return &UTXOProjector{source: source, checker: checker}, nil
}

// Source returns the configured spend source.
func (p *UTXOProjector) Source() SpendSource {
	return p.source
}

// Project returns the unspent outputs of txs that pay one of addresses, in batch order.
func (p *UTXOProjector) Project(ctx context.Context, addresses []string, txs []model.Transaction) ([]model.UTXO, error) {
	wanted := make(map[string]struct{}, len(addresses))
	for _, address := range addresses {
		wanted[address] = struct{}{}
	}

	utxos := make([]model.UTXO, 0)
	for _, tx := range txs {
		for _, out := range tx.Outputs {
			if _, ok := wanted[out.Address]; !ok || out.Address == "" {
				continue
			}
			unspent, err := p.unspent(ctx, tx.Hash, out)
			if err != nil {
				return nil, err
			}
			if !unspent {
				continue
			}
			utxos = append(utxos, model.UTXO{
				Address:       out.Address,
				TxID:          tx.Hash,
				Confirmations: tx.Confirmations,
				OutputN:       out.IndexN,
				BlockHeight:   tx.BlockHeight,
				Fee:           tx.Fee,
				Size:          tx.Size,
				Value:         out.Value,
				Script:        out.LockScript,
				Date:          tx.Date,
			})
		}
	}
	return utxos, nil
}

func (p *UTXOProjector) unspent(ctx context.Context, txID string, out model.TransactionOutput) (bool, error) {
	if p.source == SpendSourceBatch {
		return out.Spent == model.SpentNo, nil
	}
	if out.Spent == model.SpentYes {
		return false, nil
	}
	spent, err := p.checker.IsSpent(ctx, txID, out.IndexN)
	if err != nil {
		return false, fmt.Errorf("check spend of %s:%d: %w", txID, out.IndexN, err)
	}
	return !spent, nil
}
