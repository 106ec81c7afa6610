package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 打卡模块错误。
var (
	CheckInStoreFailed = Definition{Code: "CHECK_IN_STORE_FAILED", Message: "Check-in state write failed"}
	InvalidCheckInDate = Definition{Code: "INVALID_CHECK_IN_DATE", Message: "Invalid check-in date"}
)

// 通用错误。
var (
	InvalidRequest = Definition{Code: "INVALID_REQUEST", Message: "Invalid request payload"}
)

// 设置模块错误。
var (
	StoreIO         = Definition{Code: "STORE_IO", Message: "Settings store read/write failed"}
	SecretStoreIO   = Definition{Code: "SECRET_STORE_IO", Message: "Secret store read/write failed"}
	InvalidSettings = Definition{Code: "INVALID_SETTINGS", Message: "Invalid settings payload"}
)

// 升级告警模块错误。
var (
	NetworkSend    = Definition{Code: "NETWORK_SEND", Message: "Escalation email send failed"}
	NotifyDispatch = Definition{Code: "NOTIFY_DISPATCH", Message: "Reminder notification dispatch failed"}
)

// 调度模块错误。
var (
	JobRegisterFailed = Definition{Code: "JOB_REGISTER_FAILED", Message: "Job registration failed"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	CheckInStoreFailed.Code: CheckInStoreFailed,
	InvalidCheckInDate.Code: InvalidCheckInDate,
	InvalidRequest.Code:     InvalidRequest,
	StoreIO.Code:            StoreIO,
	SecretStoreIO.Code:      SecretStoreIO,
	InvalidSettings.Code:    InvalidSettings,
	NetworkSend.Code:        NetworkSend,
	NotifyDispatch.Code:     NotifyDispatch,
	JobRegisterFailed.Code:  JobRegisterFailed,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
