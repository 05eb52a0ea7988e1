package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

const otpSubject = "Código de recuperación de contraseña"

// dialer abstrae gomail.Dialer para poder sustituirlo en tests.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender envía los OTP por SMTP con gomail.
type SMTPSender struct {
	from   string
	dialer dialer
	log    *logger.Logger
}

// NewSMTPSender construye el sender a partir de la configuración SMTP.
func NewSMTPSender(cfg config.SMTPConfig, log *logger.Logger) *SMTPSender {
	if log == nil {
		log = logger.Nop()
	}
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		log:    log.Component("email"),
	}
}

// SendOTP arma el mensaje y lo envía. El contexto solo se consulta antes de conectar: gomail no lo soporta.
func (s *SMTPSender) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(otpMessage(s.from, to, code, ttl)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	s.log.Info().Str("to", to).Msg("otp enviado")
	return nil
}

func otpMessage(from, to, code string, ttl time.Duration) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", otpSubject)
	minutes := int(ttl.Minutes())
	m.SetBody("text/plain", fmt.Sprintf("Tu código es %s. Vence en %d minutos.", code, minutes))
	m.AddAlternative("text/html", fmt.Sprintf(
		"<p>Tu código de recuperación es <strong>%s</strong>.</p><p>Vence en %d minutos.</p>", code, minutes))
	return m
}

// LogSender reemplaza el envío cuando no hay SMTP configurado: solo deja el código en el log.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el sender de desarrollo.
func NewLogSender(log *logger.Logger) *LogSender {
	if log == nil {
		log = logger.Nop()
	}
	return &LogSender{log: log.Component("email")}
}

// SendOTP registra el código con nivel warn.
func (s *LogSender) SendOTP(_ context.Context, to, code string, ttl time.Duration) error {
	s.log.Warn().Str("to", to).Str("otp", code).Dur("ttl", ttl).Msg("smtp deshabilitado, otp no enviado")
	return nil
}
