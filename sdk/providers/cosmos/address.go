package cosmos

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/bech32"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// addressFromBech32 left-pads a bech32 account address into the canonical
// 32-byte form. Empty owners (renounced ownership) map to the zero address.
func addressFromBech32(addr string) (types.Address, error) {
	var out types.Address
	if addr == "" {
		return out, nil
	}

	_, raw, err := bech32.DecodeAndConvert(addr)
	if err != nil {
		return out, fmt.Errorf("decode bech32 address %q: %w", addr, err)
	}
	if len(raw) > len(out) {
		return out, fmt.Errorf("bech32 address %q is %d bytes, want at most %d", addr, len(raw), len(out))
	}
	copy(out[len(out)-len(raw):], raw)
	return out, nil
}
