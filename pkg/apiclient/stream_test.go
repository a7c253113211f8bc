package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func sseHeaders(w http.ResponseWriter) http.Flusher {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	return flusher
}

func writeFrame(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	if flusher != nil {
		flusher.Flush()
	}
}

func TestStreamDashboardReceivesSnapshotsAfterConnected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != dashboardStreamPath {
			t.Fatalf("예상치 못한 경로: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer access-1" {
			writeUnauthorized(w)
			return
		}
		flusher := sseHeaders(w)
		// connected 이전의 프레임은 무시되어야 한다
		writeFrame(w, flusher, "snapshot", `{"seq":0}`)
		writeFrame(w, flusher, "connected", `{"server_time":"2026-08-29T00:00:00Z"}`)
		writeFrame(w, flusher, "snapshot", `{"seq":1}`)
		writeFrame(w, flusher, "snapshot", `{"seq":2}`)
		<-r.Context().Done()
	}))
	defer server.Close()

	store := NewMemorySessionStore()
	_ = store.Save(freshSession("access-1", "refresh-1"))
	client, err := New(Options{BaseURL: server.URL, Store: store})
	if err != nil {
		t.Fatalf("클라이언트 생성 실패: %v", err)
	}

	errStop := errors.New("enough")
	var snapshots []string
	err = client.StreamDashboard(context.Background(), StreamOptions{MaxReconnects: 1, ReconnectDelay: 10 * time.Millisecond}, func(event StreamEvent) error {
		if event.Event != "snapshot" {
			t.Fatalf("예상치 못한 이벤트: %s", event.Event)
		}
		snapshots = append(snapshots, string(event.Data))
		if len(snapshots) == 2 {
			return errStop
		}
		return nil
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("핸들러 오류가 그대로 전달되지 않음: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("스냅샷 수 = %d, 기대 2", len(snapshots))
	}
	if snapshots[0] != `{"seq":1}` || snapshots[1] != `{"seq":2}` {
		t.Fatalf("connected 이전 프레임이 걸러지지 않음: %v", snapshots)
	}
}

func TestStreamDashboardBoundedReconnects(t *testing.T) {
	var connects int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&connects, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := NewMemorySessionStore()
	_ = store.Save(freshSession("access-1", "refresh-1"))
	client, err := New(Options{BaseURL: server.URL, Store: store})
	if err != nil {
		t.Fatalf("클라이언트 생성 실패: %v", err)
	}

	err = client.StreamDashboard(context.Background(), StreamOptions{MaxReconnects: 2, ReconnectDelay: 10 * time.Millisecond}, func(StreamEvent) error {
		t.Fatal("연결 실패인데 핸들러가 호출됨")
		return nil
	})
	if !errors.Is(err, ErrStreamClosed) {
		t.Fatalf("재접속 한도 소진이 ErrStreamClosed 가 아님: %v", err)
	}
	if got := atomic.LoadInt32(&connects); got != 3 {
		t.Fatalf("접속 시도 횟수 = %d, 기대 3 (최초 + 재접속 2)", got)
	}
}

func TestStreamDashboardFlappingServerStillTerminates(t *testing.T) {
	var connects int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&connects, 1)
		flusher := sseHeaders(w)
		// 구독을 성립시킨 직후 끊기를 반복한다
		writeFrame(w, flusher, "connected", `{}`)
	}))
	defer server.Close()

	store := NewMemorySessionStore()
	_ = store.Save(freshSession("access-1", "refresh-1"))
	client, err := New(Options{BaseURL: server.URL, Store: store})
	if err != nil {
		t.Fatalf("클라이언트 생성 실패: %v", err)
	}

	err = client.StreamDashboard(context.Background(), StreamOptions{MaxReconnects: 2, ReconnectDelay: 10 * time.Millisecond}, func(StreamEvent) error {
		return nil
	})
	if !errors.Is(err, ErrStreamClosed) {
		t.Fatalf("깜빡이는 서버가 ErrStreamClosed 로 끝나지 않음: %v", err)
	}
	if got := atomic.LoadInt32(&connects); got != 3 {
		t.Fatalf("접속 시도 횟수 = %d, 기대 3 (예산은 구독 성립과 무관)", got)
	}
}

func TestStreamDashboardRequiresSession(t *testing.T) {
	client, err := New(Options{BaseURL: "http://127.0.0.1:1", Store: NewMemorySessionStore()})
	if err != nil {
		t.Fatalf("클라이언트 생성 실패: %v", err)
	}
	err = client.StreamDashboard(context.Background(), StreamOptions{}, func(StreamEvent) error { return nil })
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("세션 없는 구독이 ErrSessionExpired 가 아님: %v", err)
	}
}

func TestStreamDashboardStopsOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := sseHeaders(w)
		writeFrame(w, flusher, "connected", `{}`)
		<-r.Context().Done()
	}))
	defer server.Close()

	store := NewMemorySessionStore()
	_ = store.Save(freshSession("access-1", "refresh-1"))
	client, err := New(Options{BaseURL: server.URL, Store: store})
	if err != nil {
		t.Fatalf("클라이언트 생성 실패: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	err = client.StreamDashboard(ctx, StreamOptions{}, func(StreamEvent) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("취소가 context.Canceled 로 끝나지 않음: %v", err)
	}
}
