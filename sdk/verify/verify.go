// Package verify submits contract source verification to block explorers and
// polls for the result.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"go.uber.org/zap"
)

// ContractInput is one contract's verification payload.
type ContractInput struct {
	// ContractAddress is the deployed address to verify.
	ContractAddress string
	// ContractName is the fully qualified name, e.g. "contracts/Mailbox.sol:Mailbox".
	ContractName string
	// CompilerVersion is the long solc version, e.g. "v0.8.22+commit.4fc1097e".
	CompilerVersion string
	// SourceCode is the flattened source or standard-json input.
	SourceCode string
	// ConstructorArgs is the ABI-encoded constructor arguments without 0x prefix.
	ConstructorArgs string
	// OptimizationRuns is nonzero when the optimizer was enabled.
	OptimizationRuns int
}

// Client talks to one chain's block explorer API.
type Client struct {
	apiURL     string
	apiKey     string
	family     chains.ExplorerFamily
	httpClient *http.Client
	logger     *zap.Logger

	pollInterval time.Duration
	pollAttempts uint
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithPolling overrides the status poll cadence.
func WithPolling(interval time.Duration, attempts uint) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.pollAttempts = attempts
	}
}

// NewClient builds a verification client from chain metadata, using the
// chain's preferred explorer.
func NewClient(meta chains.Metadata, opts ...Option) (*Client, error) {
	explorer, err := meta.Explorer()
	if err != nil {
		return nil, err
	}
	apiURL, err := meta.ApiURL()
	if err != nil {
		return nil, err
	}

	c := &Client{
		apiURL:       apiURL,
		apiKey:       explorer.ApiKey,
		family:       explorer.Family,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       zap.NewNop(),
		pollInterval: 5 * time.Second,
		pollAttempts: 24,
	}
	for _, opt := range opts {
		opt(c)
	}

	switch c.family {
	case chains.FamilyEtherscan, chains.FamilyBlockscout, chains.FamilyRoutescan:
		return c, nil
	}
	return nil, fmt.Errorf("explorer family %q does not support source verification", c.family)
}

// apiResponse is the etherscan-style response envelope. Blockscout's API
// mode speaks the same envelope.
type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// Submit posts the verification request and returns the receipt GUID used to
// poll for the outcome.
func (c *Client) Submit(ctx context.Context, in ContractInput) (string, error) {
	if in.ContractAddress == "" || in.SourceCode == "" {
		return "", fmt.Errorf("verify: contract address and source code required")
	}

	form := url.Values{}
	form.Set("module", "contract")
	form.Set("action", "verifysourcecode")
	form.Set("contractaddress", in.ContractAddress)
	form.Set("sourceCode", in.SourceCode)
	form.Set("codeformat", "solidity-standard-json-input")
	form.Set("contractname", in.ContractName)
	form.Set("compilerversion", in.CompilerVersion)
	// etherscan's historical field name, misspelling included
	form.Set("constructorArguements", in.ConstructorArgs)
	if in.OptimizationRuns > 0 {
		form.Set("optimizationUsed", "1")
		form.Set("runs", fmt.Sprintf("%d", in.OptimizationRuns))
	} else {
		form.Set("optimizationUsed", "0")
	}
	if c.apiKey != "" {
		form.Set("apikey", c.apiKey)
	}

	resp, err := c.post(ctx, form)
	if err != nil {
		return "", err
	}
	if resp.Status != "1" {
		return "", fmt.Errorf("verification rejected: %s: %s", resp.Message, resp.Result)
	}

	c.logger.Info("verification submitted",
		zap.String("contract", in.ContractAddress),
		zap.String("guid", resp.Result),
	)
	return resp.Result, nil
}

// WaitForResult polls the explorer until the submission identified by guid
// passes, fails, or the attempt budget runs out.
func (c *Client) WaitForResult(ctx context.Context, guid string) error {
	return retry.Do(
		func() error {
			status, err := c.checkStatus(ctx, guid)
			if err != nil {
				return err
			}
			switch {
			case strings.HasPrefix(status, "Pass"):
				return nil
			case strings.HasPrefix(status, "Fail"):
				return retry.Unrecoverable(fmt.Errorf("verification failed: %s", status))
			default:
				// "Pending in queue" and friends
				return fmt.Errorf("verification pending: %s", status)
			}
		},
		retry.Context(ctx),
		retry.Attempts(c.pollAttempts),
		retry.Delay(c.pollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

func (c *Client) checkStatus(ctx context.Context, guid string) (string, error) {
	query := url.Values{}
	query.Set("module", "contract")
	query.Set("action", "checkverifystatus")
	query.Set("guid", guid)
	if c.apiKey != "" {
		query.Set("apikey", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	return resp.Result, nil
}

func (c *Client) post(ctx context.Context, form url.Values) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*apiResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read explorer response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer returned %d: %s", resp.StatusCode, body)
	}

	var out apiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode explorer response: %w", err)
	}
	return &out, nil
}
