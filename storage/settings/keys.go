package settings

import "errors"

// ErrNotFound 键尚未写入
var ErrNotFound = errors.New("settings: key not found")

// 与旧版移动端保持一致的键名（含历史遗留的 steak 拼写），
// 改名会丢用户数据，所以原样保留。
const (
	KeyStreakDays      = "key_current_steak"
	KeyLastCheckInDate = "key_last_check_in_date"
	KeyCheckInHistory  = "key_check_in_history"

	KeyContactEmail  = "key_contact_email"
	KeyContactEmail2 = "key_contact_email_2"
	KeyContactEmail3 = "key_contact_email_3"
	KeySenderEmail   = "key_sender_email"
	KeySMTPHost      = "key_smtp_host"

	// KeyLegacySenderPassword 旧版存在普通存储里的发件凭证，
	// 启动迁移钩子会把它搬进密钥存储并删除。该键不存在即迁移已完成。
	KeyLegacySenderPassword = "key_sender_password"
)
