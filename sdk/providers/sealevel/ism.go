package sealevel

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// PDA seed fragments of the multisig-ism-message-id program.
var (
	seedPrefix        = []byte("multisig_ism_message_id")
	seedSeparator     = []byte("-")
	seedDomainData    = []byte("domain_data")
	seedAccessControl = []byte("access_control")
)

const evmAddressLength = 20

// ismReader adapts a Provider to the security module read surface. The
// module address is the multisig program id; per-domain validator sets live
// in program derived accounts.
type ismReader Provider

func (r *ismReader) provider() *Provider { return (*Provider)(r) }

// ModuleType verifies the program is initialized by checking its access
// control account. The only ISM program the deployment ships verifies
// message id signatures.
func (r *ismReader) ModuleType(ctx context.Context, addr types.Address) (types.ModuleType, error) {
	account, _, err := solana.FindProgramAddress(
		[][]byte{seedPrefix, seedSeparator, seedAccessControl},
		programKey(addr),
	)
	if err != nil {
		return types.ModuleTypeUnused, fmt.Errorf("ism %s: derive access control account: %w", addr, err)
	}
	if _, err := r.provider().fetchAccount(ctx, account); err != nil {
		return types.ModuleTypeUnused, err
	}
	return types.ModuleTypeMessageIDMultisig, nil
}

// ReadMultisig fetches and decodes the domain data account holding the
// validator set for the provider's origin domain.
func (r *ismReader) ReadMultisig(ctx context.Context, addr types.Address) ([]types.Address, uint8, error) {
	p := r.provider()
	if p.origin == 0 {
		return nil, 0, fmt.Errorf("ism %s: no origin domain configured", addr)
	}

	domainLE := make([]byte, 4)
	binary.LittleEndian.PutUint32(domainLE, uint32(p.origin))

	account, _, err := solana.FindProgramAddress(
		[][]byte{seedPrefix, seedSeparator, domainLE, seedSeparator, seedDomainData},
		programKey(addr),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ism %s: derive domain account: %w", addr, err)
	}

	data, err := p.fetchAccount(ctx, account)
	if err != nil {
		return nil, 0, err
	}
	validators, threshold, err := decodeDomainData(data)
	if err != nil {
		return nil, 0, fmt.Errorf("ism %s domain %d: %w", addr, p.origin, err)
	}
	return validators, threshold, nil
}

// decodeDomainData decodes the borsh account layout:
// initialized bool, bump seed u8, validator vec (u32 length prefix, 20-byte
// addresses), threshold u8.
func decodeDomainData(data []byte) ([]types.Address, uint8, error) {
	if len(data) < 6 {
		return nil, 0, fmt.Errorf("account data too short: %d bytes", len(data))
	}
	if data[0] == 0 {
		return nil, 0, fmt.Errorf("account not initialized")
	}
	buf := data[2:] // skip initialized flag and bump seed

	count := binary.LittleEndian.Uint32(buf)
	buf = buf[4:]
	if uint64(len(buf)) < uint64(count)*evmAddressLength+1 {
		return nil, 0, fmt.Errorf("account data truncated: %d validators in %d bytes", count, len(buf))
	}

	validators := make([]types.Address, count)
	for i := range validators {
		copy(validators[i][32-evmAddressLength:], buf[:evmAddressLength])
		buf = buf[evmAddressLength:]
	}
	return validators, buf[0], nil
}

// ReadRouting always fails: the sealevel deployment has no routing modules.
func (r *ismReader) ReadRouting(_ context.Context, addr types.Address) (types.Address, map[types.Domain]types.Address, error) {
	return types.Address{}, nil, fmt.Errorf("ism %s: routing modules are not supported on %s chains", addr, types.ProtocolSealevel)
}

func (r *ismReader) ReadAggregation(_ context.Context, addr types.Address) ([]types.Address, uint8, error) {
	return nil, 0, fmt.Errorf("ism %s: aggregation modules are not supported on %s chains", addr, types.ProtocolSealevel)
}

func (r *ismReader) ReadNull(_ context.Context, addr types.Address) (ism.Config, error) {
	return nil, fmt.Errorf("ism %s: null modules are not supported on %s chains", addr, types.ProtocolSealevel)
}
