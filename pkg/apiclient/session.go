// Package apiclient 는 관리 콘솔과 내부 도구가 백엔드 API 를 호출할 때 쓰는
// 클라이언트 측 세션 관리와 인증 요청 래퍼를 제공한다.
package apiclient

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TokenSession 저장되는 토큰 쌍과 만료 시각
type TokenSession struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// Expired 리프레시 토큰까지 만료되어 세션을 버려야 하는지 여부
func (s *TokenSession) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.RefreshExpiresAt.IsZero() && !now.Before(s.RefreshExpiresAt)
}

// SessionStore 세션 저장소 인터페이스
// Load 는 세션이 없거나 만료되었으면 (nil, nil) 을 돌려준다.
type SessionStore interface {
	Load() (*TokenSession, error)
	Save(session *TokenSession) error
	Clear() error
}

// FileSessionStore 파일 기반 세션 저장소. 토큰이 담기므로 0600 으로 기록한다.
type FileSessionStore struct {
	path string
	mu   sync.Mutex
}

// NewFileSessionStore 파일 세션 저장소 생성
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// Load 세션 파일 읽기
func (s *FileSessionStore) Load() (*TokenSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var session TokenSession
	if err := json.Unmarshal(data, &session); err != nil {
		// 깨진 세션 파일은 없는 것으로 취급한다.
		return nil, nil
	}
	if session.AccessToken == "" || session.RefreshToken == "" {
		return nil, nil
	}
	if session.Expired(time.Now()) {
		return nil, nil
	}
	return &session, nil
}

// Save 세션 파일 기록
func (s *FileSessionStore) Save(session *TokenSession) error {
	if session == nil {
		return errors.New("session is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear 세션 파일 삭제
func (s *FileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemorySessionStore 메모리 세션 저장소. 테스트와 단명 프로세스용.
type MemorySessionStore struct {
	mu      sync.Mutex
	session *TokenSession
}

// NewMemorySessionStore 메모리 세션 저장소 생성
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

// Load 세션 조회
func (s *MemorySessionStore) Load() (*TokenSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, nil
	}
	if s.session.AccessToken == "" || s.session.RefreshToken == "" {
		return nil, nil
	}
	if s.session.Expired(time.Now()) {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

// Save 세션 기록
func (s *MemorySessionStore) Save(session *TokenSession) error {
	if session == nil {
		return errors.New("session is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.session = &copied
	return nil
}

// Clear 세션 삭제
func (s *MemorySessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	return nil
}
