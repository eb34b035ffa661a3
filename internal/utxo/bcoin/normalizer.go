package bcoin

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/pkg/safe"
	"go.uber.org/zap"
)

const maxWitnessItemSize = 4_000_000

var coinbasePrevTxID = strings.Repeat("0", 64)

// Normalizer converts node records into the canonical transaction model.
type Normalizer struct {
	decoder *scriptDecoder
	logger  *zap.Logger
}

// NewNormalizer creates a Normalizer resolving fallback addresses on the given network.
func NewNormalizer(network model.Network, logger *zap.Logger) (*Normalizer, error) {
	decoder, err := newScriptDecoder(network)
	if err != nil {
		return nil, err
	}
	return &Normalizer{
		decoder: decoder,
		logger:  logger.Named("normalizer"),
	}, nil
}

// Normalize rebuilds a transaction from its node record. Outputs are returned with an unknown spend status.
func (n *Normalizer) Normalize(rec TxRecord) (model.Transaction, error) {
	if err := rec.validate(); err != nil {
		return model.Transaction{}, err
	}

	raw := n.decodeRaw(rec)

	size, err := safe.Uint32(len(rec.Hex) / 2)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s size: %w", rec.Hash, err)
	}

	tx := model.Transaction{
		Hash:          rec.Hash,
		Version:       rec.Version,
		LockTime:      rec.LockTime,
		Fee:           safe.NonNegative(rec.Fee),
		Size:          size,
		Raw:           raw,
		Confirmations: safe.NonNegative(rec.Confirmations),
		Status:        model.TxUnconfirmed,
		Coinbase:      rec.Inputs[0].Prevout.Hash == coinbasePrevTxID,
		WitnessType:   model.WitnessLegacy,
		Inputs:        make([]model.TransactionInput, 0, len(rec.Inputs)),
		Outputs:       make([]model.TransactionOutput, 0, len(rec.Outputs)),
	}
	if rec.Confirmations > 0 {
		tx.Status = model.TxConfirmed
	}
	if rec.Time > 0 {
		tx.Date = time.Unix(rec.Time, 0).UTC()
	}
	if rec.Height != nil && *rec.Height > 0 {
		height := uint64(*rec.Height)
		tx.BlockHeight = &height
	}
	if rec.Block != nil {
		tx.BlockHash = *rec.Block
	}

	for i, in := range rec.Inputs {
		input, err := n.input(in, i)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s input %d: %w", rec.Hash, i, err)
		}
		if input.WitnessType == model.WitnessSegwit {
			tx.WitnessType = model.WitnessSegwit
		}
		tx.Inputs = append(tx.Inputs, input)
	}

	for i, out := range rec.Outputs {
		output, err := n.output(out, i)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s output %d: %w", rec.Hash, i, err)
		}
		tx.Outputs = append(tx.Outputs, output)
	}

	tx.UpdateTotals()
	if tx.Coinbase {
		tx.Inputs[0].Value = tx.OutputTotal
	}
	return tx, nil
}

// decodeRaw decodes the raw hex and checks it hashes to the reported txid and witness hash.
// Problems are logged, never fatal.
func (n *Normalizer) decodeRaw(rec TxRecord) []byte {
	if rec.Hex == "" {
		return nil
	}
	raw, err := hex.DecodeString(rec.Hex)
	if err != nil {
		n.logger.Error("undecodable raw transaction", zap.String("txid", rec.Hash), zap.Error(err))
		return nil
	}

	var msg wire.MsgTx
	if err := msg.Deserialize(bytes.NewReader(raw)); err != nil {
		n.logger.Error("raw transaction does not deserialize", zap.String("txid", rec.Hash), zap.Error(err))
		return raw
	}
	if computed := msg.TxHash(); !sameHash(computed, rec.Hash) {
		n.logger.Error("transaction hash mismatch",
			zap.String("reported", rec.Hash),
			zap.Stringer("computed", computed))
	}
	if rec.WitnessHash == "" {
		return raw
	}
	if computed := msg.WitnessHash(); !sameHash(computed, rec.WitnessHash) {
		n.logger.Error("transaction witness hash mismatch",
			zap.String("txid", rec.Hash),
			zap.String("reported", rec.WitnessHash),
			zap.Stringer("computed", computed))
	}
	return raw
}

// sameHash compares a computed hash with its byte-reversed hex form as reported by the node.
func sameHash(computed chainhash.Hash, reported string) bool {
	h, err := chainhash.NewHashFromStr(reported)
	return err == nil && computed.IsEqual(h)
}

func (n *Normalizer) input(in InputRecord, position int) (model.TransactionInput, error) {
	indexN, err := safe.Uint32(position)
	if err != nil {
		return model.TransactionInput{}, err
	}

	input := model.TransactionInput{
		PrevTxID:    in.Prevout.Hash,
		PrevIndex:   in.Prevout.Index,
		Sequence:    in.Sequence,
		WitnessType: model.WitnessLegacy,
		IndexN:      indexN,
	}

	if hasWitness(in.Witness) {
		witness, err := hex.DecodeString(in.Witness)
		if err != nil {
			return model.TransactionInput{}, malformed("witness hex: %v", err)
		}
		stack, err := parseWitness(witness)
		if err != nil {
			return model.TransactionInput{}, malformed("witness stack: %v", err)
		}
		input.WitnessType = model.WitnessSegwit
		input.UnlockingScript = witness[1:]
		input.Witness = stack
	} else if in.Script != "" {
		script, err := hex.DecodeString(in.Script)
		if err != nil {
			return model.TransactionInput{}, malformed("script hex: %v", err)
		}
		input.UnlockingScript = script
	}

	if in.Coin != nil {
		input.Address = in.Coin.Address
		input.Value = safe.NonNegative(in.Coin.Value)
		input.HasPrevout = true
	}
	return input, nil
}

func (n *Normalizer) output(out OutputRecord, position int) (model.TransactionOutput, error) {
	indexN, err := safe.Uint32(position)
	if err != nil {
		return model.TransactionOutput{}, err
	}
	script, err := hex.DecodeString(out.Script)
	if err != nil {
		return model.TransactionOutput{}, malformed("script hex: %v", err)
	}

	address := out.Address
	if address == "" {
		address = n.decoder.address(script)
	}
	return model.TransactionOutput{
		Value:      safe.NonNegative(out.Value),
		Address:    address,
		LockScript: script,
		ScriptType: n.decoder.scriptType(script),
		IndexN:     indexN,
		Spent:      model.SpentUnknown,
	}, nil
}

// hasWitness reports whether a witness field carries data; bcoin encodes an empty stack as "00".
func hasWitness(witness string) bool {
	return witness != "" && witness != "00"
}

func parseWitness(witness []byte) ([][]byte, error) {
	r := bytes.NewReader(witness)
	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, err
	}
	if count > uint64(len(witness)) {
		return nil, fmt.Errorf("witness item count %d exceeds payload", count)
	}
	stack := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		item, err := wire.ReadVarBytes(r, 0, maxWitnessItemSize, "witness item")
		if err != nil {
			return nil, err
		}
		stack = append(stack, item)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%d trailing witness bytes", r.Len())
	}
	return stack, nil
}
