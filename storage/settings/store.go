package settings

import "context"

// Store 是打卡状态和联系人配置的扁平键值存储抽象。
// 单次 Get/Set 保证原子性，SetBatch 保证整批写入一起生效或一起失败，
// 调用方不假设独占访问。
//
// Get 对不存在的键返回 ErrNotFound，用于区分"尚未写入"和"写入了零值"。
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error

	// AddToSet / GetSet 操作集合型键（打卡历史）
	AddToSet(ctx context.Context, key, member string) error
	GetSet(ctx context.Context, key string) ([]string, error)

	// SetBatch 一次性写入多个字符串键和多个集合追加，作为单个事务提交
	SetBatch(ctx context.Context, values map[string]string, setAdds map[string][]string) error

	// Observe 返回指定键的值流：先发当前值（若存在），之后每次 Set 推送新值。
	// 返回的取消函数必须被调用，否则订阅泄漏。流惰性、无限、对每个订阅者可重启。
	Observe(ctx context.Context, key string) (<-chan string, func())
}
