package transport

import (
	"encoding/hex"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

type inputDTO struct {
	PrevTxID        string   `json:"prev_txid"`
	PrevIndex       uint32   `json:"prev_index"`
	IndexN          uint32   `json:"index_n"`
	UnlockingScript string   `json:"unlocking_script"`
	Witness         []string `json:"witness"`
	WitnessType     string   `json:"witness_type"`
	Sequence        uint32   `json:"sequence"`
	Address         string   `json:"address"`
	Value           uint64   `json:"value"`
	HasPrevout      bool     `json:"has_prevout"`
}

type outputDTO struct {
	IndexN         uint32  `json:"index_n"`
	Value          uint64  `json:"value"`
	Address        string  `json:"address"`
	LockScript     string  `json:"lock_script"`
	ScriptType     string  `json:"script_type"`
	Spent          string  `json:"spent"`
	SpendingTxID   string  `json:"spending_txid,omitempty"`
	SpendingInputN *uint32 `json:"spending_input_n,omitempty"`
}

type transactionDTO struct {
	TxID          string      `json:"txid"`
	Version       uint32      `json:"version"`
	LockTime      uint32      `json:"locktime"`
	Fee           uint64      `json:"fee"`
	Size          uint32      `json:"size"`
	Raw           string      `json:"raw"`
	Confirmations uint64      `json:"confirmations"`
	Status        string      `json:"status"`
	Coinbase      bool        `json:"coinbase"`
	WitnessType   string      `json:"witness_type"`
	BlockHeight   *uint64     `json:"block_height"`
	BlockHash     string      `json:"block_hash"`
	Date          time.Time   `json:"date"`
	InputTotal    uint64      `json:"input_total"`
	OutputTotal   uint64      `json:"output_total"`
	Inputs        []inputDTO  `json:"inputs"`
	Outputs       []outputDTO `json:"outputs"`
}

type utxoDTO struct {
	Address       string     `json:"address"`
	TxID          string     `json:"txid"`
	Confirmations uint64     `json:"confirmations"`
	OutputN       uint32     `json:"output_n"`
	BlockHeight   *uint64    `json:"block_height"`
	Fee           uint64     `json:"fee"`
	Size          uint32     `json:"size"`
	Value         uint64     `json:"value"`
	Script        string     `json:"script"`
	Date          time.Time  `json:"date"`
	CapturedAt    *time.Time `json:"captured_at,omitempty"`
}

type blockDTO struct {
	Hash          string           `json:"hash"`
	Height        uint64           `json:"height"`
	Depth         uint64           `json:"depth"`
	Version       uint32           `json:"version"`
	Timestamp     time.Time        `json:"timestamp"`
	PrevBlockHash string           `json:"prev_block_hash"`
	MerkleRoot    string           `json:"merkle_root"`
	Bits          uint32           `json:"bits"`
	Nonce         uint32           `json:"nonce"`
	TotalTxs      uint32           `json:"total_txs"`
	Page          uint32           `json:"page"`
	Pages         uint32           `json:"pages"`
	Limit         uint32           `json:"limit"`
	Transactions  []transactionDTO `json:"transactions,omitempty"`
	TxIDs         []string         `json:"txids,omitempty"`
}

type feeResponse struct {
	Blocks    int     `json:"blocks"`
	Available bool    `json:"available"`
	Rate      int64   `json:"rate"`
	BTCPerKB  float64 `json:"btc_per_kb"`
}

type broadcastRequest struct {
	Hex string `json:"hex"`
}

type broadcastResponse struct {
	TxID     string         `json:"txid"`
	Accepted bool           `json:"accepted"`
	Response map[string]any `json:"response"`
}

func toTransactionDTO(tx model.Transaction) transactionDTO {
	inputs := make([]inputDTO, 0, len(tx.Inputs))
	for _, in := range tx.Inputs {
		witness := make([]string, 0, len(in.Witness))
		for _, item := range in.Witness {
			witness = append(witness, hex.EncodeToString(item))
		}
		inputs = append(inputs, inputDTO{
			PrevTxID:        in.PrevTxID,
			PrevIndex:       in.PrevIndex,
			IndexN:          in.IndexN,
			UnlockingScript: hex.EncodeToString(in.UnlockingScript),
			Witness:         witness,
			WitnessType:     string(in.WitnessType),
			Sequence:        in.Sequence,
			Address:         in.Address,
			Value:           in.Value,
			HasPrevout:      in.HasPrevout,
		})
	}

	outputs := make([]outputDTO, 0, len(tx.Outputs))
	for _, out := range tx.Outputs {
		dto := outputDTO{
			IndexN:     out.IndexN,
			Value:      out.Value,
			Address:    out.Address,
			LockScript: hex.EncodeToString(out.LockScript),
			ScriptType: out.ScriptType,
			Spent:      out.Spent.String(),
		}
		if out.Spent == model.SpentYes && out.SpendingTxID != "" {
			n := out.SpendingInputN
			dto.SpendingTxID = out.SpendingTxID
			dto.SpendingInputN = &n
		}
		outputs = append(outputs, dto)
	}

	return transactionDTO{
		TxID:          tx.Hash,
		Version:       tx.Version,
		LockTime:      tx.LockTime,
		Fee:           tx.Fee,
		Size:          tx.Size,
		Raw:           hex.EncodeToString(tx.Raw),
		Confirmations: tx.Confirmations,
		Status:        string(tx.Status),
		Coinbase:      tx.Coinbase,
		WitnessType:   string(tx.WitnessType),
		BlockHeight:   tx.BlockHeight,
		BlockHash:     tx.BlockHash,
		Date:          tx.Date,
		InputTotal:    tx.InputTotal,
		OutputTotal:   tx.OutputTotal,
		Inputs:        inputs,
		Outputs:       outputs,
	}
}

func toTransactionDTOs(txs []model.Transaction) []transactionDTO {
	out := make([]transactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionDTO(tx))
	}
	return out
}

func toUTXODTOs(utxos []model.UTXO) []utxoDTO {
	out := make([]utxoDTO, 0, len(utxos))
	for _, u := range utxos {
		dto := utxoDTO{
			Address:       u.Address,
			TxID:          u.TxID,
			Confirmations: u.Confirmations,
			OutputN:       u.OutputN,
			BlockHeight:   u.BlockHeight,
			Fee:           u.Fee,
			Size:          u.Size,
			Value:         u.Value,
			Script:        hex.EncodeToString(u.Script),
			Date:          u.Date,
		}
		if !u.CapturedAt.IsZero() {
			capturedAt := u.CapturedAt
			dto.CapturedAt = &capturedAt
		}
		out = append(out, dto)
	}
	return out
}

func toBlockDTO(b model.Block) blockDTO {
	dto := blockDTO{
		Hash:          b.Hash,
		Height:        b.Height,
		Depth:         b.Depth,
		Version:       b.Version,
		Timestamp:     b.Timestamp,
		PrevBlockHash: b.PrevBlockHash,
		MerkleRoot:    b.MerkleRoot,
		Bits:          b.Bits,
		Nonce:         b.Nonce,
		TotalTxs:      b.TotalTxs,
		Page:          b.Page,
		Pages:         b.Pages,
		Limit:         b.Limit,
		TxIDs:         b.TxIDs,
	}
	if b.Transactions != nil {
		dto.Transactions = toTransactionDTOs(b.Transactions)
	}
	return dto
}
