package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"PrivateCheck/internal/handler"
	"PrivateCheck/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	// 平安打卡路由
	checkIns := v1.Group("/check-ins")
	{
		checkIns.GET("/today", handler.GetTodayCheckIn)
		checkIns.POST("/today/complete", handler.CompleteTodayCheckIn)
		checkIns.GET("/history", handler.GetCheckInHistory)
	}

	// 紧急联系人设置路由
	settings := v1.Group("/settings")
	{
		settings.GET("/contacts", handler.GetContactSettings)
		settings.PUT("/contacts", handler.UpdateContactSettings)
	}

	// 提醒路由
	reminders := v1.Group("/reminders")
	{
		reminders.POST("/test", handler.TriggerTestReminder)
	}
}
