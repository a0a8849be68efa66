package angellist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	companyusecase "angellist_widget/internal/feature/company/usecase"
	searchusecase "angellist_widget/internal/feature/search/usecase"
	"angellist_widget/internal/shared/ratelimiter"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 2 << 20

var (
	// ErrInvalidID is returned for non-positive company identifiers. No request is made.
	ErrInvalidID = errors.New("angellist: invalid company id")
	// ErrEmptyQuery is returned for blank search strings. No request is made.
	ErrEmptyQuery = errors.New("angellist: empty search query")
	// ErrUnavailable collapses transport, status, and decoding failures.
	ErrUnavailable = errors.New("angellist: data unavailable")
)

// Client はAngelList APIからスタートアップ情報を取得します。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// Clientが各ユースケースの依存インターフェースを実装していることをコンパイル時に検証します。
var (
	_ companyusecase.CompanyFetcher = (*Client)(nil)
	_ companyusecase.RolesFetcher   = (*Client)(nil)
	_ searchusecase.StartupSearcher = (*Client)(nil)
)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
// limiterがnilの場合はレート制限を行いません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Client {
	return &Client{cfg: cfg.WithDefaults(), client: client, limiter: limiter}
}

// GetCompany は1社分のスタートアップ情報をデコード済みJSONオブジェクトとして返します。
func (c *Client) GetCompany(ctx context.Context, id int) (map[string]any, error) {
	if id < 1 {
		return nil, ErrInvalidID
	}
	body, err := c.get(ctx, "startups/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}
	var company map[string]any
	if err := json.Unmarshal(body, &company); err != nil {
		return nil, fmt.Errorf("%w: decode startup %d: %v", ErrUnavailable, id, err)
	}
	if len(company) == 0 {
		return nil, fmt.Errorf("%w: empty startup %d", ErrUnavailable, id)
	}
	return company, nil
}

// GetRoles は企業に紐づくロール一覧（startup_roles）を返します。
// ロールが存在しない場合もErrUnavailableとして扱います。
func (c *Client) GetRoles(ctx context.Context, id int) ([]any, error) {
	if id < 1 {
		return nil, ErrInvalidID
	}
	q := url.Values{}
	q.Set("startup_id", strconv.Itoa(id))
	body, err := c.get(ctx, "startup_roles", q)
	if err != nil {
		return nil, err
	}
	var payload struct {
		StartupRoles []any `json:"startup_roles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode roles for %d: %v", ErrUnavailable, id, err)
	}
	if len(payload.StartupRoles) == 0 {
		return nil, fmt.Errorf("%w: no roles for %d", ErrUnavailable, id)
	}
	return payload.StartupRoles, nil
}

// SearchStartups はフリーテキストでスタートアップを検索し、JSON配列をそのまま返します。
func (c *Client) SearchStartups(ctx context.Context, query string) (json.RawMessage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("type", "Startup")
	body, err := c.get(ctx, "search", q)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) || !bytes.HasPrefix(body, []byte("[")) {
		return nil, fmt.Errorf("%w: search response is not a JSON array", ErrUnavailable)
	}
	return json.RawMessage(body), nil
}

// get はAPIにGETリクエストを送り、空でないレスポンスボディを返します。
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if c.limiter != nil {
		// 枠が空くまでの待機もリクエストのタイムアウトに含める
		waitCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		err := c.limiter.Wait(waitCtx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: rate limit: %v", ErrUnavailable, err)
		}
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: angellist http %d", ErrUnavailable, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnavailable)
	}
	return body, nil
}
