package otp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockflow-api/internal/infrastructure/otp"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestMemoryStore_VerifyConsumesCode(t *testing.T) {
	s := otp.NewMemoryStore()
	s.Set("ana@example.com", "123456", time.Minute)

	assert.False(t, s.Verify("ana@example.com", "000000"))
	assert.True(t, s.Verify("ana@example.com", "123456"))
	assert.False(t, s.Verify("ana@example.com", "123456"))
	assert.False(t, s.Verify("otro@example.com", "123456"))
}

func TestMemoryStore_ExpiresAndSweeps(t *testing.T) {
	c := &clock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	s := otp.NewMemoryStore().WithClock(c.now)

	s.Set("a", "111111", 10*time.Minute)
	s.Set("b", "222222", time.Minute)

	c.t = c.t.Add(2 * time.Minute)
	assert.False(t, s.Verify("b", "222222"))

	s.Set("c", "333333", time.Minute)
	assert.Equal(t, 2, s.Len())

	c.t = c.t.Add(10 * time.Minute)
	s.Set("d", "444444", time.Minute)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Verify("d", "444444"))
}
