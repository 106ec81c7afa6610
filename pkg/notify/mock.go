package notify

import (
	"context"
	"errors"
	"sync"
)

type MockNotification struct {
	Title string
	Body  string
}

// MockPresenter 可配置的通知投递 mock，实现 Presenter 接口
type MockPresenter struct {
	mu    sync.Mutex
	Calls []MockNotification

	// FailNext 置为 true 时，下一次调用返回 mock 错误并自动复位
	FailNext bool
}

func NewMockPresenter() *MockPresenter {
	return &MockPresenter{
		Calls: make([]MockNotification, 0),
	}
}

func (m *MockPresenter) Present(ctx context.Context, title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockNotification{Title: title, Body: body})

	if m.FailNext {
		m.FailNext = false
		return errors.New("mock notification failure")
	}
	return nil
}
