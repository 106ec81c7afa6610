package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"PrivateCheck/internal/service"
	"PrivateCheck/pkg/response"
)

// TriggerTestReminder 手动触发一次测试提醒，无视当天是否已打卡
// POST /v1/reminders/test
func TriggerTestReminder(ctx context.Context, c *app.RequestContext) {
	if err := service.Reminder().TriggerTest(ctx); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"triggered": true,
	})
}
