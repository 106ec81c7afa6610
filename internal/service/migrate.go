package service

import (
	"context"

	"go.uber.org/zap"

	"PrivateCheck/pkg/errors"
	"PrivateCheck/pkg/logger"
	"PrivateCheck/storage/secret"
)

// RunSecurityMigration 把历史版本遗留在普通设置里的发件凭证搬进密钥存储。
// 旧键不存在即视为已迁移，重复执行是无害的。
// 注意顺序：先写入新位置，确认成功后才删除旧键，中途失败不会丢凭证。
func RunSecurityMigration(ctx context.Context) error {
	repo := settingsRepo()

	legacy, err := repo.LegacySenderSecret(ctx)
	if err != nil {
		logger.Logger.Error("Security migration: failed to read legacy credential", zap.Error(err))
		return errors.StoreIO
	}

	if legacy == "" {
		return nil
	}

	if err := secretVault().SetSecret(ctx, secret.SecretNameSenderPassword, legacy); err != nil {
		logger.Logger.Error("Security migration: failed to store credential", zap.Error(err))
		return errors.SecretStoreIO
	}

	if err := repo.RemoveLegacySenderSecret(ctx); err != nil {
		logger.Logger.Error("Security migration: failed to remove legacy key", zap.Error(err))
		return errors.StoreIO
	}

	logger.Logger.Info("Security migration completed: sender credential moved to secret store")
	return nil
}
