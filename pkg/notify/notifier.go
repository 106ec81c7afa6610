package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"PrivateCheck/config"
	"PrivateCheck/pkg/logger"
)

// Presenter 本地提醒通知的投递接口。核心逻辑只定义触发契约和文案，
// 展示方式由实现决定。
type Presenter interface {
	Present(ctx context.Context, title, body string) error
}

var (
	presenter Presenter
	once      sync.Once
)

func Init() error {
	once.Do(func() {
		cfg := config.Cfg

		if cfg.PushoverToken != "" && cfg.PushoverUser != "" {
			presenter = NewPushoverPresenter(cfg.PushoverAPIURL, cfg.PushoverToken, cfg.PushoverUser)
			logger.Logger.Info("Notification presenter initialized",
				zap.String("provider", "pushover"),
			)
			return
		}

		// 未配置推送渠道时退化为日志输出，提醒不丢但只对运维可见
		presenter = &logPresenter{}
		logger.Logger.Info("Notification presenter initialized",
			zap.String("provider", "log"),
		)
	})
	return nil
}

// Client 返回默认投递器
func Client() Presenter {
	if presenter == nil {
		panic("notify presenter not init")
	}
	return presenter
}

// SetPresenter 覆盖默认投递器（测试用）
func SetPresenter(p Presenter) {
	presenter = p
}

type logPresenter struct{}

func (l *logPresenter) Present(ctx context.Context, title, body string) error {
	logger.Logger.Info("Reminder notification",
		zap.String("title", title),
		zap.String("body", body),
	)
	return nil
}
