package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
)

// TransactionTypeCreate marks a broadcast transaction that deployed new code.
const TransactionTypeCreate = "CREATE"

// BroadcastFile represents the parts of a Foundry broadcast file the extractor reads.
// Any other field is ignored whatever its shape.
type BroadcastFile struct {
	Transactions []BroadcastTransaction `json:"transactions"`
	Receipts     []BroadcastReceipt     `json:"receipts"`
}

// BroadcastTransaction represents a transaction in a broadcast file
type BroadcastTransaction struct {
	Hash            string `json:"hash"`
	TransactionType string `json:"transactionType"`
	ContractName    string `json:"contractName"`
	ContractAddress string `json:"contractAddress"`
}

// IsContractCreation reports whether the transaction deployed a contract to a known address.
func (tx BroadcastTransaction) IsContractCreation() bool {
	return tx.TransactionType == TransactionTypeCreate && tx.ContractAddress != ""
}

// BroadcastReceipt represents a receipt in a broadcast file
type BroadcastReceipt struct {
	TransactionHash string      `json:"transactionHash"`
	BlockNumber     BlockNumber `json:"blockNumber"`
}

// BlockNumber is a receipt block number. Foundry writes it as a 0x-prefixed hex
// string, older tooling as a plain JSON number; both decode to the same value.
// Values wider than 64 bits are rejected.
type BlockNumber struct {
	Value uint64
	Valid bool
}

// NewBlockNumber returns a present block number.
func NewBlockNumber(n uint64) BlockNumber {
	return BlockNumber{Value: n, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (b *BlockNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = BlockNumber{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		// an empty string carries no block number
		if s == "" {
			*b = BlockNumber{}
			return nil
		}
		n, ok := math.ParseUint64(s)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidBlockNumber, s)
		}
		*b = NewBlockNumber(n)
		return nil
	}

	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBlockNumber, data)
	}
	*b = NewBlockNumber(n)
	return nil
}

// MarshalJSON implements json.Marshaler
func (b BlockNumber) MarshalJSON() ([]byte, error) {
	if !b.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatUint(b.Value, 10)), nil
}

// Ptr returns the block number as a pointer, nil when absent.
func (b BlockNumber) Ptr() *uint64 {
	if !b.Valid {
		return nil
	}
	n := b.Value
	return &n
}
