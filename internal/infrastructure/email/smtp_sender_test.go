package email

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/stockflow-api/pkg/logger"
)

type captureDialer struct {
	msgs []*gomail.Message
	err  error
}

func (d *captureDialer) DialAndSend(m ...*gomail.Message) error {
	d.msgs = append(d.msgs, m...)
	return d.err
}

func TestSMTPSender_SendOTP(t *testing.T) {
	d := &captureDialer{}
	s := &SMTPSender{from: "no-reply@stockflow.local", dialer: d, log: logger.Nop()}

	require.NoError(t, s.SendOTP(context.Background(), "ana@example.com", "042917", 10*time.Minute))
	require.Len(t, d.msgs, 1)

	m := d.msgs[0]
	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("To"))
	subject := m.GetHeader("Subject")
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.Equal(t, otpSubject, decoded)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "042917")
}

func TestSMTPSender_WrapsDialError(t *testing.T) {
	boom := errors.New("connection refused")
	s := &SMTPSender{from: "x@y", dialer: &captureDialer{err: boom}, log: logger.Nop()}
	err := s.SendOTP(context.Background(), "ana@example.com", "111111", time.Minute)
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SendOTP(ctx, "ana@example.com", "111111", time.Minute), context.Canceled)
}

func TestLogSender_WritesCode(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf}))
	require.NoError(t, s.SendOTP(context.Background(), "ana@example.com", "555000", time.Minute))
	assert.Contains(t, buf.String(), "555000")
	assert.Contains(t, buf.String(), `"component":"email"`)
}
