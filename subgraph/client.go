// Package subgraph fetches raw holder candidates from a token-indexing
// GraphQL endpoint. Everything it returns is untrusted input for the
// planner: completeness and accuracy are the indexer's best effort, and
// the verifier re-reads every balance it actually relies on.
package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/chebykin/top-n-holders-go/topn"
)

// DefaultPageSize is the holders-per-request page size.
const DefaultPageSize = 1000

// Client is a paginated GraphQL client for a token subgraph.
type Client struct {
	url      string
	client   *http.Client
	log      zerolog.Logger
	pageSize int
}

// Option configures a Client.
type Option func(*Client)

// WithPageSize overrides the pagination page size.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.client = h }
}

// NewClient creates a subgraph client for the given endpoint URL.
func NewClient(url string, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:      log,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchResult is one complete holder dump for a token.
type FetchResult struct {
	// Holders is the raw candidate set, in whatever order and of
	// whatever completeness the indexer provided.
	Holders []topn.Holder

	// TotalSupply is the supply figure the indexer reports. It is
	// advisory only; the trusted supply always comes from the ledger.
	TotalSupply *uint256.Int
}

// graphQL wire types.

type gqlRequest struct {
	Query string `json:"query"`
}

type gqlHolder struct {
	HolderAddress string `json:"holderAddress"`
	Balance       string `json:"balance"`
}

type gqlToken struct {
	TotalSupply string      `json:"totalSupply"`
	Holders     []gqlHolder `json:"holders"`
}

type gqlData struct {
	Token *gqlToken `json:"token"`
}

type gqlResponse struct {
	Data   gqlData `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchHolders pages through the subgraph's holder list for token until
// a short page signals the end. Transient transport failures are retried
// per page with capped exponential backoff; a token the subgraph does
// not know is ErrTokenNotFound.
func (c *Client) FetchHolders(ctx context.Context, token common.Address) (*FetchResult, error) {
	res := &FetchResult{TotalSupply: uint256.NewInt(0)}

	for skip := 0; ; skip += c.pageSize {
		page, err := c.fetchPage(ctx, token, skip)
		if err != nil {
			return nil, err
		}
		if page == nil {
			if skip == 0 {
				return nil, fmt.Errorf("%w: %s", ErrTokenNotFound, token)
			}
			break
		}

		if skip == 0 {
			supply, err := uint256.FromDecimal(page.TotalSupply)
			if err != nil {
				return nil, fmt.Errorf("%w: total supply %q: %w", ErrBadResponse, page.TotalSupply, err)
			}
			res.TotalSupply = supply
		}

		for _, h := range page.Holders {
			if !common.IsHexAddress(h.HolderAddress) {
				return nil, fmt.Errorf("%w: holder address %q", ErrBadResponse, h.HolderAddress)
			}
			bal, err := uint256.FromDecimal(h.Balance)
			if err != nil {
				return nil, fmt.Errorf("%w: balance %q for %s: %w", ErrBadResponse, h.Balance, h.HolderAddress, err)
			}
			res.Holders = append(res.Holders, topn.Holder{
				Address: common.HexToAddress(h.HolderAddress),
				Balance: bal,
			})
		}

		c.log.Debug().
			Int("page_holders", len(page.Holders)).
			Int("skip", skip).
			Msg("fetched subgraph page")

		if len(page.Holders) < c.pageSize {
			break
		}
	}

	c.log.Info().
		Int("holders", len(res.Holders)).
		Str("subgraph_total_supply", res.TotalSupply.Dec()).
		Msg("subgraph fetch complete")
	return res, nil
}

// fetchPage requests one page. A nil token in the response is returned
// as a nil page.
func (c *Client) fetchPage(ctx context.Context, token common.Address, skip int) (*gqlToken, error) {
	query := fmt.Sprintf(`{
  token(id: %q) {
    totalSupply
    holders(first: %d, skip: %d, orderBy: balance, orderDirection: desc) {
      holderAddress
      balance
    }
  }
}`, strings.ToLower(token.Hex()), c.pageSize, skip)

	body, err := json.Marshal(gqlRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("subgraph: marshal query: %w", err)
	}

	var page *gqlToken
	backoff := retry.WithMaxRetries(4, retry.NewExponential(250*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("subgraph: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: %w", ErrRequestFailed, err))
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode >= 500 {
			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return retry.RetryableError(fmt.Errorf("%w: HTTP %d: %s", ErrRequestFailed, resp.StatusCode, respBody))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("%w: HTTP %d: %s", ErrRequestFailed, resp.StatusCode, respBody)
		}

		var gql gqlResponse
		if err := json.NewDecoder(resp.Body).Decode(&gql); err != nil {
			return fmt.Errorf("%w: decode response: %w", ErrBadResponse, err)
		}
		if len(gql.Errors) > 0 {
			return fmt.Errorf("%w: %s", ErrQueryFailed, gql.Errors[0].Message)
		}
		page = gql.Data.Token
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}
