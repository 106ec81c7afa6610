package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"PrivateCheck/internal/service"
	"PrivateCheck/pkg/response"
)

// GetTodayCheckIn 查询当天打卡状态
// GET /v1/check-ins/today
func GetTodayCheckIn(ctx context.Context, c *app.RequestContext) {
	state, checkedIn, err := service.CheckIn().Today(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"checked_in_today":   checkedIn,
		"streak_days":        state.StreakDays,
		"last_check_in_date": state.LastCheckInDate,
	})
}

// CompleteTodayCheckIn 完成当日打卡
// POST /v1/check-ins/today/complete
func CompleteTodayCheckIn(ctx context.Context, c *app.RequestContext) {
	result, err := service.CheckIn().Complete(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetCheckInHistory 查询全部打卡历史
// GET /v1/check-ins/history
func GetCheckInHistory(ctx context.Context, c *app.RequestContext) {
	history, err := service.CheckIn().History(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, history, map[string]interface{}{
		"total": len(history),
	})
}
