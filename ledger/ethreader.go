package ledger

import (
	"context"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"

	"github.com/chebykin/top-n-holders-go/chainspec"
)

// ERC20 function selectors: keccak-256 of the canonical signatures.
var (
	selTotalSupply = []byte{0x18, 0x16, 0x0d, 0xdd} // totalSupply()
	selBalanceOf   = []byte{0x70, 0xa0, 0x82, 0x31} // balanceOf(address)
)

// EthReader resolves ERC20 state through an EVM JSON-RPC endpoint with
// every call pinned to a single block chosen at construction. One
// EthReader therefore models one proof session's verified snapshot:
// all reads resolve against the same state root, and the reader can be
// handed to the verifier as a pure value source.
type EthReader struct {
	client *ethclient.Client
	spec   chainspec.Spec
	block  *big.Int
}

// Compile-time interface check.
var _ Reader = (*EthReader)(nil)

// DialEthReader connects to rpcURL, checks that the endpoint serves the
// chain named by spec, and pins the reader to block. A nil block pins
// to the endpoint's current head at call time, resolved once here so
// later reads cannot drift to a different state root.
//
// The chain-id check is the adapter's authenticity gate: a mismatched
// endpoint fails here, before any verifier scan can begin.
func DialEthReader(ctx context.Context, rpcURL string, spec chainspec.Spec, block *big.Int) (*EthReader, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrReadFailed, rpcURL, err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: chain id: %w", ErrReadFailed, err)
	}
	if chainID.Uint64() != spec.ChainID {
		client.Close()
		return nil, fmt.Errorf("%w: endpoint reports %d, spec %q expects %d",
			ErrChainMismatch, chainID.Uint64(), spec.Name, spec.ChainID)
	}

	if block == nil {
		head, err := client.BlockNumber(ctx)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: head block: %w", ErrReadFailed, err)
		}
		block = new(big.Int).SetUint64(head)
	} else {
		block = new(big.Int).Set(block)
	}

	return &EthReader{client: client, spec: spec, block: block}, nil
}

// Close releases the underlying RPC connection.
func (r *EthReader) Close() { r.client.Close() }

// Block returns the block number all reads are pinned to.
func (r *EthReader) Block() *big.Int { return new(big.Int).Set(r.block) }

// TotalSupply calls totalSupply() on token at the pinned block.
func (r *EthReader) TotalSupply(ctx context.Context, token common.Address) (*uint256.Int, error) {
	return r.callWord(ctx, token, selTotalSupply)
}

// BalanceOf calls balanceOf(account) on token at the pinned block.
func (r *EthReader) BalanceOf(ctx context.Context, token common.Address, account common.Address) (*uint256.Int, error) {
	data := make([]byte, 0, 4+32)
	data = append(data, selBalanceOf...)
	data = append(data, common.LeftPadBytes(account.Bytes(), 32)...)
	return r.callWord(ctx, token, data)
}

// callWord performs an eth_call expected to return exactly one 256-bit word.
func (r *EthReader) callWord(ctx context.Context, token common.Address, data []byte) (*uint256.Int, error) {
	msg := ethereum.CallMsg{To: &token, Data: data}
	ret, err := r.client.CallContract(ctx, msg, r.block)
	if err != nil {
		return nil, fmt.Errorf("%w: call %x on %s: %w", ErrReadFailed, data[:4], token, err)
	}
	if len(ret) != 32 {
		return nil, fmt.Errorf("%w: got %d bytes from %s", ErrBadReturnData, len(ret), token)
	}
	return new(uint256.Int).SetBytes(ret), nil
}
