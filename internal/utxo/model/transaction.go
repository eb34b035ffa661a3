package model

import "time"

// TxStatus describes whether a transaction is included in a block.
type TxStatus string

var (
	// TxUnconfirmed marks a transaction that has no confirmations yet.
	TxUnconfirmed TxStatus = "unconfirmed"
	// TxConfirmed marks a transaction with at least one confirmation.
	TxConfirmed TxStatus = "confirmed"
)

// WitnessType classifies the unlocking format of a transaction or input.
type WitnessType string

var (
	WitnessLegacy WitnessType = "legacy"
	WitnessSegwit WitnessType = "segwit"
)

// SpentStatus is the spend state of an output as seen from one address batch.
type SpentStatus uint8

const (
	// SpentUnknown means the output was not resolved.
	SpentUnknown SpentStatus = iota
	// SpentNo means no input in the batch references the output.
	SpentNo
	// SpentYes means an input in the batch references the output.
	SpentYes
)

func (s SpentStatus) String() string {
	switch s {
	case SpentNo:
		return "unspent"
	case SpentYes:
		return "spent"
	default:
		return "unknown"
	}
}

// Transaction is the canonical form of a node transaction record.
type Transaction struct {
	Hash          string
	Version       uint32
	LockTime      uint32
	Fee           uint64
	Size          uint32
	Raw           []byte
	Confirmations uint64
	Status        TxStatus
	Coinbase      bool
	WitnessType   WitnessType
	BlockHeight   *uint64
	BlockHash     string
	Date          time.Time
	Inputs        []TransactionInput
	Outputs       []TransactionOutput
	InputTotal    uint64
	OutputTotal   uint64
}

// UpdateTotals recomputes input and output totals from their constituents.
// Coinbase transactions have no funding input, so their input total mirrors the output total.
func (t *Transaction) UpdateTotals() {
	t.OutputTotal = 0
	for _, out := range t.Outputs {
		t.OutputTotal += out.Value
	}
	if t.Coinbase {
		t.InputTotal = t.OutputTotal
		return
	}
	t.InputTotal = 0
	for _, in := range t.Inputs {
		t.InputTotal += in.Value
	}
}

// TransactionInput references a previous transaction output.
type TransactionInput struct {
	PrevTxID        string
	PrevIndex       uint32
	UnlockingScript []byte
	Witness         [][]byte
	WitnessType     WitnessType
	Sequence        uint32
	Address         string
	Value           uint64
	// HasPrevout reports whether the node embedded the spent coin (address and value).
	HasPrevout bool
	IndexN     uint32
}

// TransactionOutput is an output produced by a transaction.
type TransactionOutput struct {
	Value      uint64
	Address    string
	LockScript []byte
	ScriptType string
	IndexN     uint32

	Spent          SpentStatus
	SpendingTxID   string
	SpendingInputN uint32
}
