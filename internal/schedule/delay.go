package schedule

import "time"

// NextReminderDelay 计算距离下一个 hour:minute 的等待时长。
// 今天的目标时刻已过则顺延到明天同一时刻；正好到点返回 0，立即触发。
func NextReminderDelay(now time.Time, hour, minute int) time.Duration {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if target.Before(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target.Sub(now)
}
