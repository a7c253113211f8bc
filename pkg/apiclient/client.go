package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

const (
	defaultRequestTimeout = 15 * time.Second
	// 갱신은 원 요청을 붙잡고 있으므로 일반 호출보다 짧게 제한한다.
	defaultRefreshTimeout = 5 * time.Second

	loginPath   = "/api/v1/admin/auth/login"
	refreshPath = "/api/v1/admin/auth/refresh"
)

// ErrSessionExpired 리프레시 토큰까지 무효가 되어 재로그인이 필요한 상태
var ErrSessionExpired = errors.New("apiclient: session expired, login required")

// APIError 서버가 돌려준 업무 오류
type APIError struct {
	HTTPStatus int
	StatusCode int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: api error %d (http %d): %s", e.StatusCode, e.HTTPStatus, e.Msg)
}

// Options 클라이언트 생성 옵션
type Options struct {
	BaseURL        string
	Store          SessionStore
	Locale         string
	RequestTimeout time.Duration
	RefreshTimeout time.Duration
}

// Client 인증 포함 API 클라이언트.
// 401 응답을 받으면 리프레시 토큰으로 토큰 쌍을 갱신한 뒤 원 요청을 딱 한 번 재시도한다.
// 갱신은 singleflight 로 합쳐져 동시 호출이 몰려도 갱신 요청은 한 번만 나간다.
type Client struct {
	rest        *resty.Client
	refreshRest *resty.Client
	store       SessionStore
	locale      string

	refreshGroup singleflight.Group
}

// New 클라이언트 생성
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	parsed, err := url.Parse(opts.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base URL %q", opts.BaseURL)
	}
	if opts.Store == nil {
		return nil, errors.New("apiclient: session store is required")
	}

	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	refreshTimeout := opts.RefreshTimeout
	if refreshTimeout <= 0 {
		refreshTimeout = defaultRefreshTimeout
	}

	build := func(timeout time.Duration) *resty.Client {
		client := resty.New().
			SetBaseURL(opts.BaseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json").
			SetHeader("Content-Type", "application/json")
		if opts.Locale != "" {
			client.SetHeader("X-Locale", opts.Locale)
		}
		return client
	}

	return &Client{
		rest:        build(requestTimeout),
		refreshRest: build(refreshTimeout),
		store:       opts.Store,
		locale:      opts.Locale,
	}, nil
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type tokenData struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func (d *tokenData) toSession() *TokenSession {
	return &TokenSession{
		AccessToken:      d.AccessToken,
		RefreshToken:     d.RefreshToken,
		AccessExpiresAt:  d.AccessExpiresAt,
		RefreshExpiresAt: d.RefreshExpiresAt,
	}
}

// Login 아이디와 비밀번호로 로그인하고 세션을 저장한다.
func (c *Client) Login(ctx context.Context, username, password string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		Post(loginPath)
	if err != nil {
		return err
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return err
	}
	var data tokenData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return fmt.Errorf("apiclient: decode login response: %w", err)
	}
	return c.store.Save(data.toSession())
}

// Logout 저장된 세션을 버린다.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Get 인증 GET 요청
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post 인증 POST 요청
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put 인증 PUT 요청
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete 인증 DELETE 요청
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	session, err := c.store.Load()
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionExpired
	}

	resp, err := c.execute(ctx, method, path, body, session.AccessToken)
	if err != nil {
		return err
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		accessToken, err := c.refreshSession(ctx)
		if err != nil {
			return err
		}
		// 갱신 후 재시도는 한 번뿐이다. 또 401 이면 세션을 버린다.
		resp, err = c.execute(ctx, method, path, body, accessToken)
		if err != nil {
			return err
		}
		if resp.StatusCode() == http.StatusUnauthorized {
			_ = c.store.Clear()
			return ErrSessionExpired
		}
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("apiclient: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) execute(ctx context.Context, method, path string, body interface{}, accessToken string) (*resty.Response, error) {
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.SetBody(body)
	}
	return req.Execute(method, path)
}

// refreshSession 리프레시 토큰으로 새 토큰 쌍을 받아 저장하고 새 액세스 토큰을 돌려준다.
// 동시 호출은 singleflight 로 합쳐진다. 갱신 실패는 재로그인이 필요한 종단 상태다.
func (c *Client) refreshSession(ctx context.Context) (string, error) {
	value, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		session, err := c.store.Load()
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrSessionExpired
		}

		resp, err := c.refreshRest.R().
			SetContext(ctx).
			SetBody(map[string]string{"refresh_token": session.RefreshToken}).
			Post(refreshPath)
		if err != nil {
			// 호출자가 취소한 경우가 아니면 전송 실패도 종단 상태다.
			// 갱신이 매달리면 재시도 사슬 전체가 멈추므로 빨리 세션 만료로 떨어뜨린다.
			if ctx.Err() != nil {
				return nil, err
			}
			_ = c.store.Clear()
			return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}
		env, err := decodeEnvelope(resp)
		if err != nil {
			_ = c.store.Clear()
			return nil, ErrSessionExpired
		}
		var data tokenData
		if err := json.Unmarshal(env.Data, &data); err != nil || data.AccessToken == "" {
			_ = c.store.Clear()
			return nil, ErrSessionExpired
		}
		if err := c.store.Save(data.toSession()); err != nil {
			return nil, err
		}
		return data.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

func decodeEnvelope(resp *resty.Response) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("apiclient: unexpected response (http %d)", resp.StatusCode())
	}
	if resp.IsError() || env.StatusCode != 0 {
		return nil, &APIError{
			HTTPStatus: resp.StatusCode(),
			StatusCode: env.StatusCode,
			Msg:        env.Msg,
		}
	}
	return &env, nil
}
