package model

// EscalationDecision 升级判定结果。
// Send 为 false 时其余字段无意义。
type EscalationDecision struct {
	Send            bool
	MissedDays      int    // 判定口径为 diffDays-1，与旧版行为保持一致
	StreakAtBreak   int    // 中断前的连胜天数，用于邮件正文
	LastCheckInDate string // 最近一次打卡日期，用于邮件正文
}

// NoAction 不需要升级
var NoAction = EscalationDecision{}
