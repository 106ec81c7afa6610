package email

import (
	"context"
	"sync"
)

// Message 一封待发送的告警邮件。发件人地址、凭证和 SMTP 主机来自设置存储，
// 随消息传入而不是在初始化时固定。
type Message struct {
	To         string
	Subject    string
	Body       string
	From       string
	Credential string
	SMTPHost   string
}

// Sender 邮件发送接口，网络操作，必须可被 ctx 限时取消。
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var (
	defaultSender Sender
	once          sync.Once
)

func Init() error {
	once.Do(func() {
		defaultSender = NewSMTPSender()
	})
	return nil
}

// Client 返回默认发送器
func Client() Sender {
	if defaultSender == nil {
		panic("email sender not init")
	}
	return defaultSender
}

// SetSender 覆盖默认发送器（测试用）
func SetSender(s Sender) {
	defaultSender = s
}
