package email

import (
	"context"
	"errors"
	"sync"
)

// MockSender 可配置的邮件发送 mock，实现 Sender 接口
type MockSender struct {
	mu    sync.Mutex
	Calls []Message

	// FailFor 中列出的收件地址发送时返回 mock 错误
	FailFor map[string]bool
	// FailAll 置为 true 时所有发送都失败
	FailAll bool
}

func NewMockSender() *MockSender {
	return &MockSender{
		Calls:   make([]Message, 0),
		FailFor: make(map[string]bool),
	}
}

func (m *MockSender) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, msg)

	if m.FailAll || m.FailFor[msg.To] {
		return errors.New("mock email send failure")
	}
	return nil
}

// SentTo 返回已成功记录的收件地址列表
func (m *MockSender) SentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	to := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		to = append(to, c.To)
	}
	return to
}
