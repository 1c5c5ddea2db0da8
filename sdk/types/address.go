package types

import (
	"fmt"
	"strings"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	"github.com/ethereum/go-ethereum/common"
)

// Address is the canonical 32-byte representation of a contract address.
// EVM addresses are left-padded to 32 bytes, matching the encoding used by
// the mailbox for message senders and recipients.
type Address = util.HexAddress

// addressLength is the size of a canonical address in bytes.
const addressLength = 32

// ParseAddress decodes a 0x-prefixed hex address of either 20 bytes (EVM)
// or 32 bytes (canonical).
func ParseAddress(s string) (Address, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	switch len(trimmed) {
	case common.AddressLength * 2:
		return AddressFromEVM(common.HexToAddress(s)), nil
	case addressLength * 2:
		return util.DecodeHexAddress("0x" + trimmed)
	default:
		return Address{}, fmt.Errorf("invalid address length %d: %q", len(trimmed), s)
	}
}

// AddressFromEVM left-pads a 20-byte EVM address into canonical form.
func AddressFromEVM(addr common.Address) Address {
	var out Address
	copy(out[addressLength-common.AddressLength:], addr.Bytes())
	return out
}

// EVMAddress truncates a canonical address to its low 20 bytes.
func EVMAddress(addr Address) common.Address {
	return common.BytesToAddress(addr.Bytes()[addressLength-common.AddressLength:])
}

// IsZeroAddress reports whether addr is the all-zero address.
func IsZeroAddress(addr Address) bool {
	return addr == Address{}
}
