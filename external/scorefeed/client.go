package scorefeed

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/pickemhq/pickem-pool/internal/platform/logging"
	"github.com/pickemhq/pickem-pool/internal/platform/resilience"
	"github.com/pickemhq/pickem-pool/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultTimeout            = 20 * time.Second
	defaultMaxConcurrentWeeks = 4
)

var errScoreFeedTransient = crerr.New("score feed transient failure")

type ClientConfig struct {
	HTTPClient         *http.Client
	BaseURL            string
	Token              string
	Timeout            time.Duration
	MaxRetries         int
	MaxConcurrentWeeks int
	Logger             *logging.Logger
	CircuitBreaker     resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient         *http.Client
	baseURL            string
	token              string
	maxRetries         int
	maxConcurrentWeeks int
	logger             *logging.Logger
	breaker            *resilience.CircuitBreaker
	circuitEnabled     bool
	flight             resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	maxConcurrentWeeks := cfg.MaxConcurrentWeeks
	if maxConcurrentWeeks < 1 {
		maxConcurrentWeeks = defaultMaxConcurrentWeeks
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:         httpClient,
		baseURL:            strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:              strings.TrimSpace(cfg.Token),
		maxRetries:         maxInt(cfg.MaxRetries, 0),
		maxConcurrentWeeks: maxConcurrentWeeks,
		logger:             logger,
		breaker:            resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled:     breakerCfg.Enabled,
	}
}

// FetchWeeks pulls the result feed for every requested week. Weeks are
// fetched concurrently; output order follows the requested week order so
// ingestion stays deterministic.
func (c *Client) FetchWeeks(ctx context.Context, season int, weeks []int) ([]usecase.FeedRecord, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}
	if len(weeks) == 0 {
		return nil, fmt.Errorf("at least one week is required")
	}

	ordered := make([]int, 0, len(weeks))
	seen := make(map[int]struct{}, len(weeks))
	for _, week := range weeks {
		if week <= 0 {
			return nil, fmt.Errorf("week must be greater than zero, got %d", week)
		}
		if _, ok := seen[week]; ok {
			continue
		}
		seen[week] = struct{}{}
		ordered = append(ordered, week)
	}
	sort.Ints(ordered)

	runner := pool.NewWithResults[[]usecase.FeedRecord]().
		WithContext(ctx).
		WithMaxGoroutines(c.maxConcurrentWeeks)

	recordsByWeek := make(map[int][]usecase.FeedRecord, len(ordered))
	for _, week := range ordered {
		week := week
		runner.Go(func(ctx context.Context) ([]usecase.FeedRecord, error) {
			items, err := c.fetchWeek(ctx, season, week)
			if err != nil {
				return nil, fmt.Errorf("fetch week %d: %w", week, err)
			}
			return items, nil
		})
	}

	results, err := runner.Wait()
	if err != nil {
		return nil, err
	}

	for _, items := range results {
		for _, item := range items {
			recordsByWeek[item.Week] = append(recordsByWeek[item.Week], item)
		}
	}

	out := make([]usecase.FeedRecord, 0, len(results)*16)
	for _, week := range ordered {
		out = append(out, recordsByWeek[week]...)
	}
	return out, nil
}

func (c *Client) fetchWeek(ctx context.Context, season, week int) ([]usecase.FeedRecord, error) {
	path := fmt.Sprintf("/v1/seasons/%d/weeks/%d/results", season, week)

	var envelope weekResultsEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, err
	}

	out := make([]usecase.FeedRecord, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		record := usecase.FeedRecord{
			ExternalID:   item.GameID,
			Season:       season,
			Week:         week,
			HomeTeam:     strings.TrimSpace(item.HomeTeam),
			AwayTeam:     strings.TrimSpace(item.AwayTeam),
			Slot:         strings.TrimSpace(item.Slot),
			HomeScore:    item.HomeScore,
			AwayScore:    item.AwayScore,
			IsFinal:      item.IsFinal,
			IsTiebreaker: item.IsTiebreaker,
		}
		if kickoff := parseFeedTime(item.Kickoff); kickoff != nil {
			record.Kickoff = *kickoff
		}
		out = append(out, record)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "score feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: score feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	values.Set("api_token", c.token)
	fullURL := c.baseURL + path + "?" + values.Encode()

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isScoreFeedCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errScoreFeedTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errScoreFeedTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: feed status=%d body=%s", errScoreFeedTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

type weekResultsEnvelope struct {
	Data []weekResultItem `json:"data"`
}

type weekResultItem struct {
	GameID       int64  `json:"game_id"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	Kickoff      string `json:"kickoff"`
	Slot         string `json:"slot"`
	HomeScore    *int   `json:"home_score"`
	AwayScore    *int   `json:"away_score"`
	IsFinal      bool   `json:"is_final"`
	IsTiebreaker bool   `json:"is_tiebreaker"`
}

func parseFeedTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	return nil
}

func isScoreFeedCircuitFailure(err error) bool {
	return stderrors.Is(err, errScoreFeedTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 512 {
		return text[:512] + "...(truncated)"
	}
	return text
}

func sanitizeSensitiveText(text, token string) string {
	if strings.TrimSpace(token) == "" {
		return text
	}
	return strings.ReplaceAll(text, token, "***")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
