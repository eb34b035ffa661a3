package model

import "time"

// UTXO is a reporting projection of an unspent output.
type UTXO struct {
	Coin          Coin
	Network       Network
	Address       string
	TxID          string
	Confirmations uint64
	OutputN       uint32
	BlockHeight   *uint64
	Fee           uint64
	Size          uint32
	Value         uint64
	Script        []byte
	Date          time.Time
	CapturedAt    time.Time
}

// AddressScan records one scan of an address, including scans that found nothing.
type AddressScan struct {
	Coin       Coin
	Network    Network
	Address    string
	CapturedAt time.Time
	UTXOs      uint32
	Value      uint64
}

// AddressSnapshot is the outcome of scanning one address.
type AddressSnapshot struct {
	Scan  AddressScan
	UTXOs []UTXO
}
