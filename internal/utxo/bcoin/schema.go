package bcoin

// SchemaVersion names the bcoin REST layout the records below follow. Optional members are
// pointers so that absence can be told apart from zero values.
const SchemaVersion = "bcoin/v2"

// TxRecord is a transaction as returned by /tx and /tx/address.
type TxRecord struct {
	Hash          string         `json:"hash"`
	WitnessHash   string         `json:"witnessHash,omitempty"`
	Fee           int64          `json:"fee"`
	Height        *int64         `json:"height"`
	Block         *string        `json:"block"`
	Time          int64          `json:"time"`
	Version       uint32         `json:"version"`
	Inputs        []InputRecord  `json:"inputs"`
	Outputs       []OutputRecord `json:"outputs"`
	LockTime      uint32         `json:"locktime"`
	Hex           string         `json:"hex"`
	Confirmations int64          `json:"confirmations"`
}

// InputRecord is a transaction input; Coin is present when the node knows the spent output.
type InputRecord struct {
	Prevout  PrevoutRecord `json:"prevout"`
	Script   string        `json:"script"`
	Witness  string        `json:"witness"`
	Sequence uint32        `json:"sequence"`
	Coin     *CoinRecord   `json:"coin,omitempty"`
}

// PrevoutRecord is an outpoint.
type PrevoutRecord struct {
	Hash  string `json:"hash"`
	Index uint32 `json:"index"`
}

// CoinRecord is an unspent output as returned by /coin and embedded into inputs.
type CoinRecord struct {
	Version  uint32 `json:"version"`
	Height   int64  `json:"height"`
	Value    int64  `json:"value"`
	Script   string `json:"script"`
	Address  string `json:"address"`
	Coinbase bool   `json:"coinbase"`
	Hash     string `json:"hash,omitempty"`
	Index    uint32 `json:"index,omitempty"`
}

// OutputRecord is a transaction output.
type OutputRecord struct {
	Value   int64  `json:"value"`
	Script  string `json:"script"`
	Address string `json:"address"`
}

// BlockRecord is a block as returned by /block.
type BlockRecord struct {
	Hash       string     `json:"hash"`
	Height     int64      `json:"height"`
	Depth      int64      `json:"depth"`
	Version    uint32     `json:"version"`
	PrevBlock  string     `json:"prevBlock"`
	MerkleRoot string     `json:"merkleRoot"`
	Time       int64      `json:"time"`
	Bits       uint32     `json:"bits"`
	Nonce      uint32     `json:"nonce"`
	Txs        []TxRecord `json:"txs"`
}

// InfoRecord is the node summary served at /.
type InfoRecord struct {
	Version string     `json:"version"`
	Network string     `json:"network"`
	Chain   *ChainInfo `json:"chain"`
}

// ChainInfo holds the chain tip.
type ChainInfo struct {
	Height int64  `json:"height"`
	Tip    string `json:"tip"`
}

// FeeRecord is the /fee response; Rate is in satoshis per kilobyte.
type FeeRecord struct {
	Rate *int64 `json:"rate"`
}

type broadcastRequest struct {
	Tx string `json:"tx"`
}

func (r *TxRecord) validate() error {
	if r.Hash == "" {
		return malformed("transaction record without hash")
	}
	if len(r.Inputs) == 0 {
		return malformed("transaction %s has no inputs", r.Hash)
	}
	return nil
}

func (r *BlockRecord) validate() error {
	if r.Hash == "" {
		return malformed("block record without hash")
	}
	return nil
}
