package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/aure/fgtusage/internal/models"
)

const (
	policyMonitorPath = "/api/v2/monitor/firewall/policy"
	requestTimeout    = 10 * time.Second
)

// PolicyStatsResponse is the subset of the policy monitor payload we read.
// Firmware versions differ on whether the list is under results or data.
type PolicyStatsResponse struct {
	Results []map[string]json.RawMessage `json:"results"`
	Data    []map[string]json.RawMessage `json:"data"`
}

type Client struct {
	token      string
	baseURL    string
	httpClient *resty.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient creates a FortiGate monitor API client for host (host[:port]).
func NewClient(host, token string, verifyTLS bool, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetTimeout(requestTimeout).
		SetLogger(logger.Sugar()).
		SetDisableWarn(true)

	if !verifyTLS {
		// Appliances usually ship a self-signed cert; stay quiet about it.
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
		logger.Debug("TLS certificate verification disabled", zap.String("host", host))
	}

	return &Client{
		token:      token,
		baseURL:    "https://" + host,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

// FetchUsageGiB returns the ASIC byte counter of policyID in GiB.
func (c *Client) FetchUsageGiB(ctx context.Context, policyID int) (float64, error) {
	reading, err := c.GetPolicyUsage(ctx, policyID)
	if err != nil {
		return 0, err
	}
	return reading.GiB(), nil
}

func (c *Client) GetPolicyUsage(ctx context.Context, policyID int) (*models.UsageReading, error) {
	url := c.baseURL + policyMonitorPath

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetHeader("Accept", "application/json").
		SetQueryParam("policyid", strconv.Itoa(policyID)).
		Get(url)
	if err != nil {
		return nil, &FetchError{Op: "executing request", Err: err}
	}

	if !resp.IsSuccess() {
		return nil, &FetchError{
			Op:         "checking response",
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode()),
		}
	}

	asicBytes, err := parseASICBytes(resp.Body())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("policy usage fetched",
		zap.Int("policy_id", policyID),
		zap.Int64("asic_bytes", asicBytes),
	)

	return &models.UsageReading{
		PolicyID:    policyID,
		ASICBytes:   asicBytes,
		CollectedAt: c.now(),
	}, nil
}

// parseASICBytes reads asic_bytes from the first entry of results, or of
// data when results is absent or empty.
func parseASICBytes(body []byte) (int64, error) {
	var payload PolicyStatsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, &FetchError{Op: "decoding response", Err: err}
	}

	entries := payload.Results
	if len(entries) == 0 {
		entries = payload.Data
	}
	if len(entries) == 0 || len(entries[0]) == 0 {
		return 0, &FetchError{Op: "decoding response", Err: ErrASICBytesMissing}
	}

	raw, ok := entries[0]["asic_bytes"]
	if !ok {
		return 0, &FetchError{Op: "decoding response", Err: ErrASICBytesMissing}
	}

	n, err := parseCounter(raw)
	if err != nil {
		return 0, &FetchError{Op: "decoding asic_bytes", Err: err}
	}
	return n, nil
}

// parseCounter accepts a JSON integer or a string holding one.
func parseCounter(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		raw = []byte(s)
	}

	n, err := strconv.ParseInt(string(raw), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s", ErrCounterOutOfRange, raw)
	}
	if err != nil {
		// Some firmware encodes large counters as 1.5e+10.
		f, ferr := strconv.ParseFloat(string(raw), 64)
		if ferr != nil || f != math.Trunc(f) {
			return 0, fmt.Errorf("invalid counter %s: %w", raw, err)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, fmt.Errorf("%w: %s", ErrCounterOutOfRange, raw)
		}
		n = int64(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative counter %d", n)
	}
	return n, nil
}
