package model

// ReminderDueMessage 提醒任务到期消息
type ReminderDueMessage struct {
	MessageID   string `json:"message_id"` // 消息唯一ID，用于幂等性检查
	ScheduledAt string `json:"scheduled_at"`
	Force       bool   `json:"force"` // 手动"立即测试提醒"时为 true，绕过已打卡抑制
}

// PenaltyCheckMessage 漏打卡检查任务到期消息
type PenaltyCheckMessage struct {
	MessageID   string `json:"message_id"` // 消息唯一ID，用于幂等性检查
	ScheduledAt string `json:"scheduled_at"`
}

// EventMessage 事件消息（用于事件总线）
type EventMessage struct {
	Payload    map[string]interface{} `json:"payload"`
	EventKey   string                 `json:"event_key"`
	EventType  string                 `json:"event_type"`
	OccurredAt string                 `json:"occurred_at"`
}
