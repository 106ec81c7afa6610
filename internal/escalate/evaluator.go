package escalate

import (
	"time"

	"go.uber.org/zap"

	"PrivateCheck/internal/model"
	"PrivateCheck/pkg/logger"
)

// EscalationThresholdDays 距最近打卡满多少个日历日触发告警邮件
const EscalationThresholdDays = 3

// Evaluate 判定是否需要向紧急联系人发邮件。
// 只比较日历日，diffDays >= 3 触发；MissedDays 取 diffDays-1，沿用旧版对外口径。
// 从未打过卡视为无需告警。
func Evaluate(now time.Time, lastCheckInDate string, streakDays int) model.EscalationDecision {
	if lastCheckInDate == "" {
		return model.NoAction
	}

	last, err := time.Parse(model.DateLayout, lastCheckInDate)
	if err != nil {
		logger.Logger.Warn("Unparseable last check-in date, skip escalation",
			zap.String("last_date", lastCheckInDate),
		)
		return model.NoAction
	}

	today, _ := time.Parse(model.DateLayout, now.Format(model.DateLayout))
	diffDays := int(today.Sub(last).Hours() / 24)

	if diffDays < EscalationThresholdDays {
		return model.NoAction
	}

	return model.EscalationDecision{
		Send:            true,
		MissedDays:      diffDays - 1,
		StreakAtBreak:   streakDays,
		LastCheckInDate: lastCheckInDate,
	}
}
