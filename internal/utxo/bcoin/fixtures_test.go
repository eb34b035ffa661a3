package bcoin

import (
	"context"
	"encoding/hex"
	"net/url"
	"strings"
)

const (
	genesisTxID = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
	genesisHex  = "01000000010000000000000000000000000000000000000000000000000000000000000000ffffffff" +
		"4d04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e2062" +
		"72696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff0100f2052a010000004341" +
		"04678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec1" +
		"12de5c384df7ba0b8d578a4c702b6bf11d5fac00000000"
	genesisScriptSig = "04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e2062" +
		"72696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73"
	genesisLockScript = "4104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e5" +
		"1ec112de5c384df7ba0b8d578a4c702b6bf11d5fac"
	genesisAddress = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

	selfAddr  = "bc1qselfaddress"
	otherAddr = "bc1qotheraddress"
)

var zeroHash = strings.Repeat("0", 64)

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func int64Ptr(v int64) *int64 {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func genesisRecord() TxRecord {
	return TxRecord{
		Hash:    genesisTxID,
		Height:  int64Ptr(0),
		Block:   stringPtr("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"),
		Time:    1231006505,
		Version: 1,
		Inputs: []InputRecord{{
			Prevout:  PrevoutRecord{Hash: zeroHash, Index: 0xffffffff},
			Script:   genesisScriptSig,
			Witness:  "00",
			Sequence: 0xffffffff,
		}},
		Outputs:       []OutputRecord{{Value: 5_000_000_000, Script: genesisLockScript}},
		Hex:           genesisHex,
		Confirmations: 850000,
	}
}

// spendRecord builds a confirmed transaction spending prevTxID:prevIndex from spender and paying outputs.
func spendRecord(hash, prevTxID string, prevIndex uint32, spender string, spent int64, outputs ...OutputRecord) TxRecord {
	return TxRecord{
		Hash:    hash,
		Fee:     100,
		Height:  int64Ptr(800000),
		Block:   stringPtr("blockhash"),
		Time:    1700000000,
		Version: 2,
		Inputs: []InputRecord{{
			Prevout:  PrevoutRecord{Hash: prevTxID, Index: prevIndex},
			Witness:  "00",
			Sequence: 0xfffffffd,
			Coin:     &CoinRecord{Address: spender, Value: spent},
		}},
		Outputs:       outputs,
		Confirmations: 3,
	}
}

func pay(address string, value int64) OutputRecord {
	return OutputRecord{Value: value, Address: address}
}

// fill returns a requester stub that writes value into the decode target.
func fill[T any](value T) func(context.Context, string, url.Values, any) error {
	return func(_ context.Context, _ string, _ url.Values, out any) error {
		*out.(*T) = value
		return nil
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }
