package model

// DateLayout 日历日格式，所有连胜比较都基于它，不看具体时刻
const DateLayout = "2006-01-02"

// TimeLayout 历史记录里打卡时刻的格式
const TimeLayout = "15:04"

// CheckInState 持久化的打卡进度。
// 不变式：LastCheckInDate 为空时 StreakDays == 0，非空时 StreakDays >= 1。
type CheckInState struct {
	StreakDays      int      `json:"streak_days"`
	LastCheckInDate string   `json:"last_check_in_date"` // ISO 日期，空串表示从未打卡
	History         []string `json:"history"`            // "date|HH:MM" 条目，只增不删
}

// CheckedInOn 判断指定日历日是否已打卡
func (s CheckInState) CheckedInOn(date string) bool {
	return s.LastCheckInDate != "" && s.LastCheckInDate == date
}

// HistoryEntry 组装一条历史记录
func HistoryEntry(date, timeOfDay string) string {
	return date + "|" + timeOfDay
}
