package service

import (
	"sync"

	"PrivateCheck/config"
	"PrivateCheck/internal/repository"
	"PrivateCheck/storage/secret"
	"PrivateCheck/storage/settings"
)

// 各 service 共享同一份设置仓库和密钥存储。
// 测试可以在取用 service 之前用 SetStores 换成内存实现。

var (
	depsOnce    sync.Once
	sharedRepo  *repository.SettingsRepository
	sharedVault secret.Store

	overrideMu    sync.Mutex
	overrideRepo  *repository.SettingsRepository
	overrideVault secret.Store
)

func settingsRepo() *repository.SettingsRepository {
	overrideMu.Lock()
	if overrideRepo != nil {
		r := overrideRepo
		overrideMu.Unlock()
		return r
	}
	overrideMu.Unlock()

	initDeps()
	return sharedRepo
}

func secretVault() secret.Store {
	overrideMu.Lock()
	if overrideVault != nil {
		v := overrideVault
		overrideMu.Unlock()
		return v
	}
	overrideMu.Unlock()

	initDeps()
	return sharedVault
}

func initDeps() {
	depsOnce.Do(func() {
		sharedRepo = repository.NewSettingsRepository(settings.NewRedisStore())
		sharedVault = secret.NewFileStore(config.Cfg.SecretStorePath)
	})
}

// SetStores 注入存储实现（测试用）
func SetStores(store settings.Store, vault secret.Store) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	overrideRepo = repository.NewSettingsRepository(store)
	overrideVault = vault
}
