package evm

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ABI fragments for the contract views and transactions the SDK
// needs. Kept as JSON so the fragments map one to one onto the Solidity
// interfaces.

const mailboxABIJSON = `[
	{"type":"function","name":"localDomain","stateMutability":"view","inputs":[],"outputs":[{"type":"uint32"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"type":"function","name":"defaultIsm","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"type":"function","name":"defaultHook","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"type":"function","name":"requiredHook","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]}
]`

const ismABIJSON = `[
	{"type":"function","name":"moduleType","stateMutability":"view","inputs":[],"outputs":[{"type":"uint8"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"type":"function","name":"validatorsAndThreshold","stateMutability":"view","inputs":[{"type":"bytes"}],"outputs":[{"type":"address[]"},{"type":"uint8"}]},
	{"type":"function","name":"modulesAndThreshold","stateMutability":"view","inputs":[{"type":"bytes"}],"outputs":[{"type":"address[]"},{"type":"uint8"}]},
	{"type":"function","name":"domains","stateMutability":"view","inputs":[],"outputs":[{"type":"uint32[]"}]},
	{"type":"function","name":"module","stateMutability":"view","inputs":[{"type":"uint32"}],"outputs":[{"type":"address"}]},
	{"type":"function","name":"trustedRelayer","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"type":"function","name":"paused","stateMutability":"view","inputs":[],"outputs":[{"type":"bool"}]}
]`

const hookABIJSON = `[
	{"type":"function","name":"hookType","stateMutability":"view","inputs":[],"outputs":[{"type":"uint8"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"type":"function","name":"beneficiary","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"type":"function","name":"protocolFee","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"MAX_PROTOCOL_FEE","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"destinationGasConfigs","stateMutability":"view","inputs":[{"type":"uint32"}],"outputs":[{"type":"address","name":"gasOracle"},{"type":"uint96","name":"gasOverhead"}]},
	{"type":"function","name":"getExchangeRateAndGasPrice","stateMutability":"view","inputs":[{"type":"uint32"}],"outputs":[{"type":"uint128","name":"tokenExchangeRate"},{"type":"uint128","name":"gasPrice"}]},
	{"type":"function","name":"hooks","stateMutability":"view","inputs":[{"type":"bytes"}],"outputs":[{"type":"address[]"}]},
	{"type":"function","name":"domains","stateMutability":"view","inputs":[],"outputs":[{"type":"uint32[]"}]},
	{"type":"function","name":"hookForDomain","stateMutability":"view","inputs":[{"type":"uint32"}],"outputs":[{"type":"address"}]},
	{"type":"function","name":"fallbackHook","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"type":"function","name":"paused","stateMutability":"view","inputs":[],"outputs":[{"type":"bool"}]}
]`

const routerABIJSON = `[
	{"type":"function","name":"domains","stateMutability":"view","inputs":[],"outputs":[{"type":"uint32[]"}]},
	{"type":"function","name":"routers","stateMutability":"view","inputs":[{"type":"uint32"}],"outputs":[{"type":"bytes32"}]},
	{"type":"function","name":"enrollRemoteRouters","stateMutability":"nonpayable","inputs":[{"type":"uint32[]"},{"type":"bytes32[]"}],"outputs":[]},
	{"type":"function","name":"unenrollRemoteRouters","stateMutability":"nonpayable","inputs":[{"type":"uint32[]"}],"outputs":[]}
]`

var (
	mailboxABI = mustABI(mailboxABIJSON)
	ismABI     = mustABI(ismABIJSON)
	hookABI    = mustABI(hookABIJSON)
	routerABI  = mustABI(routerABIJSON)
)

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid abi fragment: %v", err))
	}
	return parsed
}
