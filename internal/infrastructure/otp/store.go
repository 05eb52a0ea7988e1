package otp

import (
	"crypto/subtle"
	"sync"
	"time"
)

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore guarda códigos OTP en memoria. Un código vencido se descarta al leerlo;
// los vencidos restantes se barren en cada Set.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]entry
	now   func() time.Time
}

// NewMemoryStore construye el store con el reloj del sistema.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]entry), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// Set registra el código para key, reemplazando uno anterior.
func (s *MemoryStore) Set(key, code string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.codes {
		if !now.Before(e.expiresAt) {
			delete(s.codes, k)
		}
	}
	s.codes[key] = entry{code: code, expiresAt: now.Add(ttl)}
}

// Verify consume el código si coincide y sigue vigente. Un código incorrecto no invalida el vigente.
func (s *MemoryStore) Verify(key, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.codes[key]
	if !ok {
		return false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.codes, key)
		return false
	}
	if subtle.ConstantTimeCompare([]byte(e.code), []byte(code)) != 1 {
		return false
	}
	delete(s.codes, key)
	return true
}

// Len cantidad de códigos guardados (vigentes o no barridos).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}
