package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"PrivateCheck/config"
)

// SMTPSender 基于 gomail 的 SMTP 发送器
type SMTPSender struct {
	port           int
	defaultHost    string
	attemptTimeout time.Duration
}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{
		port:           config.Cfg.SMTPPort,
		defaultHost:    config.Cfg.SMTPDefaultHost,
		attemptTimeout: 30 * time.Second,
	}
}

// Send 发送一封邮件。gomail 自身不支持 ctx，这里用 goroutine 包装保证单次尝试有界；
// 失败不在内部重试，重试策略由 worker 层负责。
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	host := msg.SMTPHost
	if host == "" {
		host = s.defaultHost
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	dialer := gomail.NewDialer(host, s.port, msg.From, msg.Credential)

	ctx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("email send to %s aborted: %w", msg.To, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
		}
		return nil
	}
}
