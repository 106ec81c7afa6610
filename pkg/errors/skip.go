package errors

import "errors"

// SkipMessageError 表示消息应当被确认并跳过（重复投递、已处理等），
// 消费者看到它时 Ack 而不是 Nack 重试。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

// IsSkipMessageError 判断错误链上是否存在 SkipMessageError。
func IsSkipMessageError(err error) bool {
	var skip *SkipMessageError
	return errors.As(err, &skip)
}
