package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"PrivateCheck/config"
	"PrivateCheck/internal/model"
	"PrivateCheck/storage/settings"
)

// SettingsRepository 设置存储的类型化门面。
// 底层是扁平 KV，这里负责键名、默认值和批量提交，调用方不直接碰键。
type SettingsRepository struct {
	store settings.Store
}

func NewSettingsRepository(store settings.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) getOrDefault(ctx context.Context, key, def string) (string, error) {
	val, err := r.store.Get(ctx, key)
	if errors.Is(err, settings.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// StreakDays 当前连胜天数，未写入时为 0
func (r *SettingsRepository) StreakDays(ctx context.Context) (int, error) {
	val, err := r.getOrDefault(ctx, settings.KeyStreakDays, "0")
	if err != nil {
		return 0, err
	}

	days, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	return days, nil
}

// LastCheckInDate 最近打卡日期，从未打卡时为空串
func (r *SettingsRepository) LastCheckInDate(ctx context.Context) (string, error) {
	return r.getOrDefault(ctx, settings.KeyLastCheckInDate, "")
}

// History 全部打卡历史，按条目排序（条目以日期开头，字典序即时间序）
func (r *SettingsRepository) History(ctx context.Context) ([]string, error) {
	entries, err := r.store.GetSet(ctx, settings.KeyCheckInHistory)
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	return entries, nil
}

// State 读取完整打卡状态
func (r *SettingsRepository) State(ctx context.Context) (model.CheckInState, error) {
	streak, err := r.StreakDays(ctx)
	if err != nil {
		return model.CheckInState{}, err
	}
	lastDate, err := r.LastCheckInDate(ctx)
	if err != nil {
		return model.CheckInState{}, err
	}
	history, err := r.History(ctx)
	if err != nil {
		return model.CheckInState{}, err
	}

	return model.CheckInState{
		StreakDays:      streak,
		LastCheckInDate: lastDate,
		History:         history,
	}, nil
}

// ApplyCheckIn 以单个事务提交一次打卡：连胜、日期、历史一起生效。
// 写失败时不会留下部分更新。
func (r *SettingsRepository) ApplyCheckIn(ctx context.Context, streakDays int, lastDate, historyEntry string) error {
	return r.store.SetBatch(ctx,
		map[string]string{
			settings.KeyStreakDays:      strconv.Itoa(streakDays),
			settings.KeyLastCheckInDate: lastDate,
		},
		map[string][]string{
			settings.KeyCheckInHistory: {historyEntry},
		},
	)
}

// AppendHistory 只追加一条历史（当日重复打卡的场景）
func (r *SettingsRepository) AppendHistory(ctx context.Context, entry string) error {
	return r.store.AddToSet(ctx, settings.KeyCheckInHistory, entry)
}

// ContactConfig 读取联系人与发件配置。Credential 由调用方从密钥存储补上。
func (r *SettingsRepository) ContactConfig(ctx context.Context) (model.ContactConfig, error) {
	var cfg model.ContactConfig

	keys := [3]string{settings.KeyContactEmail, settings.KeyContactEmail2, settings.KeyContactEmail3}
	for i, key := range keys {
		val, err := r.getOrDefault(ctx, key, "")
		if err != nil {
			return model.ContactConfig{}, err
		}
		cfg.ContactEmails[i] = val
	}

	sender, err := r.getOrDefault(ctx, settings.KeySenderEmail, "")
	if err != nil {
		return model.ContactConfig{}, err
	}
	cfg.SenderEmail = sender

	host, err := r.getOrDefault(ctx, settings.KeySMTPHost, config.Cfg.SMTPDefaultHost)
	if err != nil {
		return model.ContactConfig{}, err
	}
	cfg.SMTPHost = host

	return cfg, nil
}

// SaveContactSettings 保存非敏感的联系人设置，一批提交
func (r *SettingsRepository) SaveContactSettings(ctx context.Context, contact1, contact2, contact3, sender, smtpHost string) error {
	return r.store.SetBatch(ctx,
		map[string]string{
			settings.KeyContactEmail:  contact1,
			settings.KeyContactEmail2: contact2,
			settings.KeyContactEmail3: contact3,
			settings.KeySenderEmail:   sender,
			settings.KeySMTPHost:      smtpHost,
		},
		nil,
	)
}

// LegacySenderSecret 读取旧版遗留在普通存储里的发件凭证
func (r *SettingsRepository) LegacySenderSecret(ctx context.Context) (string, error) {
	val, err := r.store.Get(ctx, settings.KeyLegacySenderPassword)
	if errors.Is(err, settings.ErrNotFound) {
		return "", nil
	}
	return val, err
}

// RemoveLegacySenderSecret 删除遗留凭证键（迁移完成标记）
func (r *SettingsRepository) RemoveLegacySenderSecret(ctx context.Context) error {
	return r.store.Remove(ctx, settings.KeyLegacySenderPassword)
}

// ObserveLastCheckInDate 订阅最近打卡日期（UI 层的响应式刷新入口）
func (r *SettingsRepository) ObserveLastCheckInDate(ctx context.Context) (<-chan string, func()) {
	return r.store.Observe(ctx, settings.KeyLastCheckInDate)
}

// ObserveStreakDays 订阅连胜天数
func (r *SettingsRepository) ObserveStreakDays(ctx context.Context) (<-chan string, func()) {
	return r.store.Observe(ctx, settings.KeyStreakDays)
}
