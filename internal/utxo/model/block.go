// Package model defines the normalized transaction, UTXO and block entities.
package model

import "time"

// Block represents a node block with paging metadata for its transaction listing.
type Block struct {
	Hash          string
	Height        uint64
	Depth         uint64
	Version       uint32
	Timestamp     time.Time
	PrevBlockHash string
	MerkleRoot    string
	Bits          uint32
	Nonce         uint32
	TotalTxs      uint32
	Page          uint32
	Pages         uint32
	Limit         uint32
	// Transactions holds the requested page when transactions were parsed.
	Transactions []Transaction
	// TxIDs holds the full listing of hashes when transactions were not parsed.
	TxIDs []string
}
