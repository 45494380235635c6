package dexscreener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KNICEX/market-alert/internal/errs"
	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
)

const (
	DefaultBaseURL = "https://api.dexscreener.com"
	// MaxBatchSize the tokens endpoint accepts at most 30 comma separated addresses
	MaxBatchSize = 30

	profilesPath = "/token-profiles/latest/v1"
	tokensPath   = "/latest/dex/tokens/"
)

type Client struct {
	cli       *resty.Client
	batchSize int
}

// NewClient cli must already carry base url and timeout
func NewClient(cli *resty.Client, batchSize int) *Client {
	if batchSize <= 0 || batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}
	return &Client{
		cli:       cli,
		batchSize: batchSize,
	}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.cli.R().SetContext(ctx).SetHeader("Accept", "application/json").Get(path)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", errs.ErrTransientFetch, path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: status %d", errs.ErrTransientFetch, path, resp.StatusCode())
	}
	return resp.Body(), nil
}

// LatestTokenProfiles returns raw profile records, use ParseProfile on each.
func (c *Client) LatestTokenProfiles(ctx context.Context) ([]json.RawMessage, error) {
	body, err := c.get(ctx, profilesPath)
	if err != nil {
		return nil, err
	}
	var profiles []json.RawMessage
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, fmt.Errorf("%w: decode token profiles: %w", errs.ErrParse, err)
	}
	return profiles, nil
}

// TokenPairs fetches pair details for the addresses in batches.
// A failed batch is skipped, its error is joined into the returned error
// alongside the records of the batches that succeeded.
func (c *Client) TokenPairs(ctx context.Context, addresses []string) ([]json.RawMessage, error) {
	var (
		pairs   []json.RawMessage
		errList []error
	)
	for _, chunk := range lo.Chunk(addresses, c.batchSize) {
		body, err := c.get(ctx, tokensPath+strings.Join(chunk, ","))
		if err != nil {
			errList = append(errList, err)
			continue
		}
		var res pairsResponse
		if err := json.Unmarshal(body, &res); err != nil {
			errList = append(errList, fmt.Errorf("%w: decode token pairs: %w", errs.ErrParse, err))
			continue
		}
		slog.Debug("fetched token pairs", "tokens", len(chunk), "pairs", len(res.Pairs))
		pairs = append(pairs, res.Pairs...)
	}
	return pairs, errors.Join(errList...)
}
