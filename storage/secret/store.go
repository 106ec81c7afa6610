package secret

import "context"

// SecretNameSenderPassword 发件邮箱凭证在密钥存储里的名字
const SecretNameSenderPassword = "secure_sender_password"

// Store 密钥存储抽象。与普通设置存储刻意分离：
// 凭证不落普通存储，普通设置也不进这里。
type Store interface {
	GetSecret(ctx context.Context, name string) (string, error)
	SetSecret(ctx context.Context, name, value string) error
	RemoveSecret(ctx context.Context, name string) error
}
