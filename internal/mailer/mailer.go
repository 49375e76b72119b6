// Package mailer delivers transactional email.
package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/marketplace-api/internal/config"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(msg Message) error
}

// New returns an SMTP sender when SMTP_HOST is set, otherwise a sender that
// only logs the message.
func New(cfg *config.Config, log *zap.Logger) Sender {
	if cfg.SMTPHost == "" {
		return &LogSender{log: log}
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

type LogSender struct {
	log *zap.Logger
}

func (s *LogSender) Send(msg Message) error {
	s.log.Info("mail not sent, SMTP disabled",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// Async sends in a goroutine so a slow SMTP server never holds a request.
type Async struct {
	next Sender
	log  *zap.Logger
}

func NewAsync(next Sender, log *zap.Logger) *Async {
	return &Async{next: next, log: log}
}

func (a *Async) Send(msg Message) error {
	go func() {
		if err := a.next.Send(msg); err != nil {
			a.log.Error("mail delivery failed", zap.String("to", msg.To), zap.Error(err))
		}
	}()
	return nil
}
