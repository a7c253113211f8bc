package apiclient

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	dashboardStreamPath    = "/api/v1/admin/dashboard/stream"
	defaultMaxReconnects   = 3
	defaultReconnectDelay  = 2 * time.Second
	streamEventConnected   = "connected"
	streamEventSnapshot    = "snapshot"
	streamConnectedTimeout = 10 * time.Second
)

// ErrStreamClosed 재접속 한도를 소진해 스트림 구독을 포기한 상태
var ErrStreamClosed = errors.New("apiclient: dashboard stream closed")

// StreamEvent 서버가 보낸 SSE 이벤트 한 건
type StreamEvent struct {
	Event string
	Data  json.RawMessage
}

// StreamOptions 스트림 구독 옵션
type StreamOptions struct {
	MaxReconnects  int
	ReconnectDelay time.Duration
}

// StreamDashboard 대시보드 스트림을 구독하고 snapshot 이벤트마다 handler 를 호출한다.
// 서버의 connected 확인 이벤트를 받아야 구독 성립으로 본다. 재접속 예산은 호출
// 전체에 걸린다. 구독이 성립했다 끊기기를 반복해도 카운터는 줄지 않으므로,
// 깜빡이는 서버도 결국 ErrStreamClosed 종단 상태에 도달한다. 그 뒤의 재구독은
// 호출자 몫이다. handler 가 오류를 돌려주면 재접속 없이 그대로 끝낸다.
func (c *Client) StreamDashboard(ctx context.Context, opts StreamOptions, handler func(StreamEvent) error) error {
	maxReconnects := opts.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = defaultMaxReconnects
	}
	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = defaultReconnectDelay
	}

	attempts := 0
	var lastErr error
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.consumeStream(ctx, handler)
		switch {
		case err == nil:
			// 서버가 정상 종료했다. 재접속을 시도한다.
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case errors.Is(err, ErrSessionExpired):
			return err
		case isHandlerError(err):
			return errors.Unwrap(err)
		default:
			lastErr = err
		}

		attempts++
		if attempts > maxReconnects {
			if lastErr != nil {
				return fmt.Errorf("%w: %v", ErrStreamClosed, lastErr)
			}
			return ErrStreamClosed
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

type handlerError struct{ err error }

func (e *handlerError) Error() string { return e.err.Error() }
func (e *handlerError) Unwrap() error { return e.err }

func isHandlerError(err error) bool {
	var he *handlerError
	return errors.As(err, &he)
}

// consumeStream 스트림 한 회 접속
func (c *Client) consumeStream(ctx context.Context, handler func(StreamEvent) error) error {
	resp, err := c.openStream(ctx)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	connected := false
	deadline := time.NewTimer(streamConnectedTimeout)
	defer deadline.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan StreamEvent)
	errCh := make(chan error, 1)
	go func() {
		errCh <- readFrames(resp.Body, events, done)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			if !connected {
				return errors.New("apiclient: no connected ack from stream")
			}
		case err := <-errCh:
			return err
		case event := <-events:
			switch event.Event {
			case streamEventConnected:
				connected = true
			default:
				if !connected {
					continue
				}
				if err := handler(event); err != nil {
					return &handlerError{err: err}
				}
			}
		}
	}
}

func (c *Client) openStream(ctx context.Context) (*http.Response, error) {
	session, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionExpired
	}

	resp, err := c.openStreamWithToken(ctx, session.AccessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		accessToken, err := c.refreshSession(ctx)
		if err != nil {
			return nil, err
		}
		resp, err = c.openStreamWithToken(ctx, accessToken)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			_ = c.store.Clear()
			return nil, ErrSessionExpired
		}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("apiclient: stream connect failed (http %d)", resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) openStreamWithToken(ctx context.Context, accessToken string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rest.BaseURL+dashboardStreamPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if c.locale != "" {
		req.Header.Set("X-Locale", c.locale)
	}
	// 스트림은 연결을 계속 쥐고 있으므로 타임아웃 없는 클라이언트를 쓴다.
	return (&http.Client{}).Do(req)
}

// readFrames SSE 프레임 파서. 빈 줄이 프레임 경계다.
func readFrames(body io.Reader, events chan<- StreamEvent, done <-chan struct{}) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var eventName string
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if eventName != "" || data.Len() > 0 {
				select {
				case events <- StreamEvent{Event: eventName, Data: json.RawMessage(data.String())}:
				case <-done:
					return nil
				}
			}
			eventName = ""
			data.Reset()
			continue
		}
		switch {
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	return scanner.Err()
}
