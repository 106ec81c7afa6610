package service

import (
	"context"
	"net/mail"
	"strings"
	"sync"

	"go.uber.org/zap"

	"PrivateCheck/config"
	"PrivateCheck/internal/model"
	"PrivateCheck/pkg/errors"
	"PrivateCheck/pkg/logger"
	"PrivateCheck/storage/secret"
)

var (
	contactService *ContactService
	contactOnce    sync.Once
)

func Contact() *ContactService {
	contactOnce.Do(func() {
		contactService = &ContactService{}
	})

	return contactService
}

type ContactService struct{}

// GetSettings 读取联系人设置。凭证只回显"是否已配置"，从不回显内容。
func (s *ContactService) GetSettings(ctx context.Context) (model.ContactSettingsView, error) {
	cfg, err := settingsRepo().ContactConfig(ctx)
	if err != nil {
		return model.ContactSettingsView{}, errors.StoreIO
	}

	credential, err := secretVault().GetSecret(ctx, secret.SecretNameSenderPassword)
	if err != nil {
		return model.ContactSettingsView{}, errors.SecretStoreIO
	}

	return model.ContactSettingsView{
		ContactEmail:  cfg.ContactEmails[0],
		ContactEmail2: cfg.ContactEmails[1],
		ContactEmail3: cfg.ContactEmails[2],
		SenderEmail:   cfg.SenderEmail,
		SMTPHost:      cfg.SMTPHost,
		HasCredential: credential != "",
	}, nil
}

// UpdateSettings 保存联系人设置。
// 非敏感字段一批提交；凭证单独写入密钥存储，且只在请求里带了新值时才覆盖。
func (s *ContactService) UpdateSettings(ctx context.Context, req model.UpdateContactsRequest) error {
	for _, addr := range []string{req.ContactEmail, req.ContactEmail2, req.ContactEmail3, req.SenderEmail} {
		if !validEmailOrEmpty(addr) {
			return errors.InvalidSettings
		}
	}

	host := strings.TrimSpace(req.SMTPHost)
	if host == "" {
		host = config.Cfg.SMTPDefaultHost
	}

	err := settingsRepo().SaveContactSettings(ctx,
		strings.TrimSpace(req.ContactEmail),
		strings.TrimSpace(req.ContactEmail2),
		strings.TrimSpace(req.ContactEmail3),
		strings.TrimSpace(req.SenderEmail),
		host,
	)
	if err != nil {
		logger.Logger.Error("Failed to save contact settings", zap.Error(err))
		return errors.StoreIO
	}

	if req.SenderSecret != "" {
		if err := secretVault().SetSecret(ctx, secret.SecretNameSenderPassword, req.SenderSecret); err != nil {
			logger.Logger.Error("Failed to save sender credential", zap.Error(err))
			return errors.SecretStoreIO
		}
	}

	logger.Logger.Info("Contact settings updated",
		zap.Bool("credential_changed", req.SenderSecret != ""),
	)

	return nil
}

func validEmailOrEmpty(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return true
	}
	_, err := mail.ParseAddress(addr)
	return err == nil
}
