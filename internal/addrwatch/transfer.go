package addrwatch

import (
	"context"
	"errors"
	"time"
)

// ErrNoTransfers indicates that the queried address has no token transfer
// activity at all. Callers should treat it as expected control flow rather
// than a failure: brand-new addresses simply have nothing to report yet.
var ErrNoTransfers = errors.New("no token transfers found for address")

// Transfer represents a single ERC20 token transfer observed on chain.
//
// Value is kept as the raw integer string returned by the indexer, in the
// token's smallest unit, since token amounts routinely overflow uint64.
type Transfer struct {
	Hash            string    // transaction hash, the identity used for change detection
	BlockNumber     uint64    // block height the transfer was mined in
	Timestamp       time.Time // block timestamp (UTC)
	From            string    // sender address
	To              string    // recipient address
	ContractAddress string    // contract of the transferred token
	Value           string    // raw amount in the token's smallest unit
	TokenName       string    // human-readable token name (e.g., "Maker")
	TokenSymbol     string    // token ticker symbol (e.g., "MKR")
	TokenDecimal    string    // number of decimals the token uses
}

// TransferSource provides access to the token transfer activity of an
// address, as seen by an external blockchain indexer.
type TransferSource interface {
	// LatestTransfer returns the single most recent ERC20 token transfer
	// involving the given address.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - address: the account address to query, passed through verbatim.
	//
	// Returns:
	//   - The most recent transfer on success.
	//   - ErrNoTransfers if the address has no transfer activity.
	//   - Any other error if the indexer could not be queried.
	LatestTransfer(ctx context.Context, address string) (Transfer, error)
}
