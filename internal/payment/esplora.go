package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goodnatureofminers/bitcredit-backend/pkg/safe"
)

// ErrAddressNotFound is returned when the explorer does not know the address.
var ErrAddressNotFound = errors.New("address not found")

// EsploraConfig holds the configuration for the Esplora client.
type EsploraConfig struct {
	// URL is the base URL of the Esplora API, e.g. https://blockstream.info/testnet/api.
	URL string

	// RequestTimeout bounds a single HTTP request.
	RequestTimeout time.Duration

	// MaxRetries is the number of retries after a failed request.
	MaxRetries int
}

// TxoStats are the funded and spent output sums of an address.
type TxoStats struct {
	FundedTxoCount uint64 `json:"funded_txo_count"`
	FundedTxoSum   uint64 `json:"funded_txo_sum"`
	SpentTxoCount  uint64 `json:"spent_txo_count"`
	SpentTxoSum    uint64 `json:"spent_txo_sum"`
	TxCount        uint64 `json:"tx_count"`
}

// AddressStats is the response of GET /address/{address}.
type AddressStats struct {
	Address      string   `json:"address"`
	ChainStats   TxoStats `json:"chain_stats"`
	MempoolStats TxoStats `json:"mempool_stats"`
}

// Received is the total ever paid to the address, confirmed or not.
// Spent outputs count too: the seller may already have moved the funds.
func (s AddressStats) Received() (uint64, error) {
	return safe.Sum(
		s.ChainStats.FundedTxoSum, s.ChainStats.SpentTxoSum,
		s.MempoolStats.FundedTxoSum, s.MempoolStats.SpentTxoSum,
	)
}

// EsploraClient queries an Esplora compatible block explorer.
type EsploraClient struct {
	cfg        EsploraConfig
	httpClient *http.Client
	sleep      func(time.Duration)
}

// NewEsploraClient creates a client for cfg.
func NewEsploraClient(cfg EsploraConfig) *EsploraClient {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")

	return &EsploraClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		sleep:      time.Sleep,
	}
}

// DefaultEsploraURL returns the public explorer for a network name.
func DefaultEsploraURL(network string) string {
	switch strings.ToLower(network) {
	case "", "main", "mainnet", "bitcoin":
		return "https://blockstream.info/api"
	case "signet":
		return "https://mempool.space/signet/api"
	default:
		return "https://blockstream.info/testnet/api"
	}
}

// AddressStats returns the funding statistics of address.
func (c *EsploraClient) AddressStats(ctx context.Context, address string) (AddressStats, error) {
	body, err := c.doGet(ctx, "/address/"+url.PathEscape(address))
	if err != nil {
		return AddressStats{}, err
	}

	var stats AddressStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return AddressStats{}, fmt.Errorf("decode address stats: %w", err)
	}
	return stats, nil
}

func (c *EsploraClient) doRequest(ctx context.Context, method, path string) (*http.Response, error) {
	target := c.cfg.URL + path

	var lastErr error
	for i := 0; i <= c.cfg.MaxRetries; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, method, target, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err == nil && resp.StatusCode >= http.StatusInternalServerError {
			_ = resp.Body.Close()
			err = fmt.Errorf("explorer returned status %d", resp.StatusCode)
		}
		if err != nil {
			lastErr = err
			if i < c.cfg.MaxRetries {
				c.sleep(time.Duration(i+1) * 100 * time.Millisecond)
			}
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.cfg.MaxRetries+1, lastErr)
}

func (c *EsploraClient) doGet(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrAddressNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("explorer returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
