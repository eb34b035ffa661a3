package chain

import "github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"

// ResolveStats summarises one spend resolution pass.
type ResolveStats struct {
	Spent      int
	Unspent    int
	Duplicates int
}

type outpoint struct {
	txID  string
	index uint32
}

type inputRef struct {
	tx    int
	input int
}

// ResolveSpends marks every output paid to address as spent or unspent, based only on the inputs
// of txs that spend from the same address. txs must hold the complete history of address.
// Outputs paid to other addresses are left untouched.
func ResolveSpends(address string, txs []model.Transaction) ResolveStats {
	var stats ResolveStats
	if address == "" {
		return stats
	}

	spenders := make(map[outpoint]inputRef)
	for i := range txs {
		for j, in := range txs[i].Inputs {
			if in.Address != address {
				continue
			}
			key := outpoint{txID: in.PrevTxID, index: in.PrevIndex}
			if _, ok := spenders[key]; ok {
				stats.Duplicates++
				continue
			}
			spenders[key] = inputRef{tx: i, input: j}
		}
	}

	for i := range txs {
		for j := range txs[i].Outputs {
			out := &txs[i].Outputs[j]
			if out.Address != address {
				continue
			}
			ref, ok := spenders[outpoint{txID: txs[i].Hash, index: out.IndexN}]
			if !ok {
				out.Spent = model.SpentNo
				out.SpendingTxID = ""
				out.SpendingInputN = 0
				stats.Unspent++
				continue
			}
			spender := &txs[ref.tx]
			out.Spent = model.SpentYes
			out.SpendingTxID = spender.Hash
			out.SpendingInputN = spender.Inputs[ref.input].IndexN
			stats.Spent++
		}
	}
	return stats
}
