package escalate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"PrivateCheck/internal/model"
	"PrivateCheck/internal/repository"
	"PrivateCheck/pkg/email"
	"PrivateCheck/pkg/errors"
	"PrivateCheck/pkg/logger"
	"PrivateCheck/pkg/metrics"
	"PrivateCheck/storage/secret"
)

// Dispatcher 负责把升级判定变成真实邮件。
// 联系人或发件配置不全时按无事发生处理，绝不报错打断调度链。
type Dispatcher struct {
	repo    *repository.SettingsRepository
	secrets secret.Store
}

func NewDispatcher(repo *repository.SettingsRepository, secrets secret.Store) *Dispatcher {
	return &Dispatcher{repo: repo, secrets: secrets}
}

// Dispatch 向所有已配置的紧急联系人逐一发信。
// 至少一封成功即整体成功；全部失败才返回错误，让消费端走重试。
func (d *Dispatcher) Dispatch(ctx context.Context, decision model.EscalationDecision) error {
	if !decision.Send {
		return nil
	}

	cfg, err := d.repo.ContactConfig(ctx)
	if err != nil {
		return errors.StoreIO
	}

	credential, err := d.secrets.GetSecret(ctx, secret.SecretNameSenderPassword)
	if err != nil {
		return errors.SecretStoreIO
	}
	cfg.Credential = credential

	recipients := cfg.Recipients()
	if len(recipients) == 0 || !cfg.Complete() {
		logger.Logger.Info("Escalation skipped: contacts or sender not configured",
			zap.Int("recipients", len(recipients)),
			zap.Bool("sender_complete", cfg.Complete()),
		)
		return nil
	}

	subject, body := buildAlertMail(decision)

	succeeded := 0
	for _, to := range recipients {
		start := time.Now()
		sendErr := email.Client().Send(ctx, email.Message{
			To:         to,
			Subject:    subject,
			Body:       body,
			From:       cfg.SenderEmail,
			Credential: cfg.Credential,
			SMTPHost:   cfg.SMTPHost,
		})
		metrics.RecordEmailSend(ctx, time.Since(start), sendErr == nil)

		if sendErr != nil {
			logger.Logger.Error("Escalation email failed",
				zap.String("to", to),
				zap.Error(sendErr),
			)
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		logger.Logger.Error("All escalation emails failed",
			zap.Int("recipients", len(recipients)),
			zap.Int("missed_days", decision.MissedDays),
		)
		return errors.NetworkSend
	}

	logger.Logger.Info("Escalation emails dispatched",
		zap.Int("succeeded", succeeded),
		zap.Int("recipients", len(recipients)),
		zap.Int("missed_days", decision.MissedDays),
	)

	return nil
}

func buildAlertMail(decision model.EscalationDecision) (subject, body string) {
	subject = "【报平安】您的好友中断了每日打卡"
	body = fmt.Sprintf(
		"您好！\n\n"+
			"您被设置为紧急联系人。您的好友已经连续 %d 天没有报平安了。\n"+
			"最近一次打卡日期：%s（当时连续打卡 %d 天）。\n\n"+
			"建议您尽快与 TA 取得联系，确认是否一切安好。\n",
		decision.MissedDays,
		decision.LastCheckInDate,
		decision.StreakAtBreak,
	)
	return subject, body
}
