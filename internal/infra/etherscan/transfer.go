package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gabapcia/addresswatch/internal/addrwatch"
	"github.com/gabapcia/addresswatch/internal/pkg/validator"

	"github.com/hashicorp/go-retryablehttp"
)

// Query defaults matching the Etherscan account API documentation.
const (
	defaultStartBlock = 0
	defaultEndBlock   = 99_999_999
	defaultPage       = 1
	defaultOffset     = 10_000
)

// Accepted values for TransferQuery.Sort.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// TransferQuery describes an ERC-20 token transfer listing request. At least
// one of Address or ContractAddress must be set.
type TransferQuery struct {
	Address         string  `validate:"required_without=ContractAddress"` // account whose transfers are listed
	ContractAddress string  `validate:"required_without=Address"`         // token contract to filter by
	StartBlock      *uint64 // first block to search, inclusive. Default: 0
	EndBlock        *uint64 // last block to search, inclusive. Default: 99999999
	Page            int     `validate:"omitempty,min=1"`           // page number, starting at 1
	Offset          int     `validate:"omitempty,min=1,max=10000"` // records per page
	Sort            string  `validate:"omitempty,oneof=asc desc"`  // block number ordering
}

// values encodes the query as the URL parameters expected by the
// "account/tokentx" action, filling in API defaults for unset fields.
func (q TransferQuery) values(apiKey string) url.Values {
	var (
		startBlock uint64 = defaultStartBlock
		endBlock   uint64 = defaultEndBlock
	)
	if q.StartBlock != nil {
		startBlock = *q.StartBlock
	}
	if q.EndBlock != nil {
		endBlock = *q.EndBlock
	}

	page := q.Page
	if page == 0 {
		page = defaultPage
	}

	offset := q.Offset
	if offset == 0 {
		offset = defaultOffset
	}

	sort := q.Sort
	if sort == "" {
		sort = SortAscending
	}

	values := make(url.Values)
	values.Set("module", "account")
	values.Set("action", "tokentx")
	if q.Address != "" {
		values.Set("address", q.Address)
	}
	if q.ContractAddress != "" {
		values.Set("contractaddress", q.ContractAddress)
	}
	values.Set("startblock", strconv.FormatUint(startBlock, 10))
	values.Set("endblock", strconv.FormatUint(endBlock, 10))
	values.Set("page", strconv.Itoa(page))
	values.Set("offset", strconv.Itoa(offset))
	values.Set("sort", sort)
	values.Set("apikey", apiKey)

	return values
}

// TokenTransferResponse represents a single ERC-20 transfer record as
// returned by the "account/tokentx" action. Every field is a string on the
// wire, including the numeric ones.
type TokenTransferResponse struct {
	BlockNumber       string `json:"blockNumber"`
	TimeStamp         string `json:"timeStamp"`
	Hash              string `json:"hash"`
	Nonce             string `json:"nonce"`
	BlockHash         string `json:"blockHash"`
	From              string `json:"from"`
	ContractAddress   string `json:"contractAddress"`
	To                string `json:"to"`
	Value             string `json:"value"`
	TokenName         string `json:"tokenName"`
	TokenSymbol       string `json:"tokenSymbol"`
	TokenDecimal      string `json:"tokenDecimal"`
	TransactionIndex  string `json:"transactionIndex"`
	Gas               string `json:"gas"`
	GasPrice          string `json:"gasPrice"`
	GasUsed           string `json:"gasUsed"`
	CumulativeGasUsed string `json:"cumulativeGasUsed"`
	Input             string `json:"input"`
	Confirmations     string `json:"confirmations"`
}

// toTransfer converts the API record to the domain Transfer type. Numeric
// fields that fail to parse are left at their zero value; the transaction
// hash is carried through untouched.
func (t TokenTransferResponse) toTransfer() addrwatch.Transfer {
	blockNumber, _ := strconv.ParseUint(t.BlockNumber, 10, 64)

	var timestamp time.Time
	if secs, err := strconv.ParseInt(t.TimeStamp, 10, 64); err == nil {
		timestamp = time.Unix(secs, 0).UTC()
	}

	return addrwatch.Transfer{
		Hash:            t.Hash,
		BlockNumber:     blockNumber,
		Timestamp:       timestamp,
		From:            t.From,
		To:              t.To,
		ContractAddress: t.ContractAddress,
		Value:           t.Value,
		TokenName:       t.TokenName,
		TokenSymbol:     t.TokenSymbol,
		TokenDecimal:    t.TokenDecimal,
	}
}

// TokenTransfers lists the ERC-20 transfers matching the query, ordered as
// requested. A query that matches nothing returns an empty slice, not an
// error.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - query: Transfer listing filters and pagination
//
// Returns:
//   - []addrwatch.Transfer: Transfers in the order reported by the API
//   - error: ErrUnexpectedStatusCode on a non-OK HTTP status,
//     ErrAPIReturnedError on an application-level rejection, or any
//     validation, transport or decoding error encountered
func (c *client) TokenTransfers(ctx context.Context, query TransferQuery) ([]addrwatch.Transfer, error) {
	if err := validator.Validate(query); err != nil {
		return nil, err
	}

	endpoint := c.endpoint + "?" + query.values(c.apiKey).Encode()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, res.StatusCode)
	}

	var envelope apiResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, err
	}

	if envelope.emptyResultSet() {
		return nil, nil
	}

	if err := envelope.Err(); err != nil {
		return nil, err
	}

	var records []TokenTransferResponse
	if err := json.Unmarshal(envelope.Result, &records); err != nil {
		return nil, err
	}

	transfers := make([]addrwatch.Transfer, len(records))
	for i, record := range records {
		transfers[i] = record.toTransfer()
	}

	return transfers, nil
}

// LatestTransfer fetches the single most recent ERC-20 transfer involving
// the given address. It issues one request asking for the first page of a
// descending listing with a single record.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - address: Account address to look up
//
// Returns:
//   - addrwatch.Transfer: The most recent transfer for the address
//   - error: addrwatch.ErrNoTransfers when the address has no transfers,
//     or any error returned by TokenTransfers
func (c *client) LatestTransfer(ctx context.Context, address string) (addrwatch.Transfer, error) {
	transfers, err := c.TokenTransfers(ctx, TransferQuery{
		Address: address,
		Page:    defaultPage,
		Offset:  1,
		Sort:    SortDescending,
	})
	if err != nil {
		return addrwatch.Transfer{}, err
	}

	if len(transfers) == 0 {
		return addrwatch.Transfer{}, addrwatch.ErrNoTransfers
	}

	return transfers[0], nil
}
