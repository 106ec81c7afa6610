package schedule

// 周期任务调度器：任务到期时只负责投递 MQ 消息，真正的副作用在 worker 侧执行。
// 下次触发时间持久化在 Redis，重启或重新注册都不会丢周期。

import (
	"context"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"PrivateCheck/pkg/errors"
	"PrivateCheck/pkg/logger"
)

// RegisterPolicy 注册时撞上已有排期的处理策略
type RegisterPolicy int

const (
	// PolicyKeepExisting 已有未到期的排期则保留，重复注册不重置周期
	PolicyKeepExisting RegisterPolicy = iota
	// PolicyReplace 总是丢弃旧排期，按新的初始延迟重新排
	PolicyReplace
)

// JobSpec 一个周期任务的完整描述
type JobSpec struct {
	Name           string
	Period         time.Duration
	InitialDelay   func(now time.Time) time.Duration // 为 nil 时首次延迟取 Period
	Policy         RegisterPolicy
	RequireNetwork bool
	Run            func(ctx context.Context) error
}

type Scheduler struct {
	mu      sync.Mutex
	jobs    map[string]JobSpec
	wake    map[string]chan struct{}
	probe   func() bool
	started bool
	runCtx  context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

var (
	schedulerOnce sync.Once
	schedulerInst *Scheduler
)

func GetScheduler() *Scheduler {
	schedulerOnce.Do(func() {
		schedulerInst = &Scheduler{
			jobs:  make(map[string]JobSpec),
			wake:  make(map[string]chan struct{}),
			probe: defaultNetworkProbe,
		}
	})
	return schedulerInst
}

// NewScheduler 独立实例（测试用），常规代码走 GetScheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		jobs:  make(map[string]JobSpec),
		wake:  make(map[string]chan struct{}),
		probe: defaultNetworkProbe,
	}
}

// SetNetworkProbe 替换网络探测（测试用）
func (s *Scheduler) SetNetworkProbe(probe func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probe = probe
}

// Register 登记任务并确定首次触发时间。
// PolicyKeepExisting 下，Redis 里还有未到期的排期时保留原排期；
// PolicyReplace 总是按 InitialDelay 重新计算。重复调用是安全的。
func (s *Scheduler) Register(ctx context.Context, spec JobSpec) error {
	if spec.Name == "" || spec.Period <= 0 || spec.Run == nil {
		return errors.JobRegisterFailed
	}

	now := time.Now()

	existing, found, err := loadNextRun(ctx, spec.Name)
	if err != nil {
		logger.Logger.Error("Failed to load existing job schedule",
			zap.String("job", spec.Name),
			zap.Error(err),
		)
		return errors.JobRegisterFailed
	}

	kept := spec.Policy == PolicyKeepExisting && found && existing.After(now)
	if !kept {
		delay := spec.Period
		if spec.InitialDelay != nil {
			delay = spec.InitialDelay(now)
		}
		next := now.Add(delay)
		if err := saveNextRun(ctx, spec.Name, next); err != nil {
			logger.Logger.Error("Failed to save job schedule",
				zap.String("job", spec.Name),
				zap.Error(err),
			)
			return errors.JobRegisterFailed
		}
		existing = next
	}

	s.mu.Lock()
	s.jobs[spec.Name] = spec
	running := s.started
	ch, looping := s.wake[spec.Name]
	s.mu.Unlock()

	logger.Logger.Info("Job registered",
		zap.String("job", spec.Name),
		zap.Time("next_run", existing),
		zap.Bool("kept_existing", kept),
	)

	if running {
		if looping {
			// 已有循环在等旧排期，唤醒它重读 next_run
			select {
			case ch <- struct{}{}:
			default:
			}
		} else {
			s.spawnLoop(spec.Name)
		}
	}

	return nil
}

// Start 启动所有已注册任务的触发循环。重复调用无效。
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.runCtx, s.cancel = context.WithCancel(ctx)
	s.started = true
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	s.mu.Unlock()

	for _, name := range names {
		s.spawnLoop(name)
	}
}

// Stop 停止所有触发循环并等待退出
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()

	s.mu.Lock()
	s.wake = make(map[string]chan struct{})
	s.mu.Unlock()
}

func (s *Scheduler) spawnLoop(name string) {
	s.mu.Lock()
	if _, exists := s.wake[name]; exists {
		s.mu.Unlock()
		return
	}
	ch := make(chan struct{}, 1)
	s.wake[name] = ch
	ctx := s.runCtx
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx, name, ch)
	}()
}

func (s *Scheduler) runLoop(ctx context.Context, name string, wake chan struct{}) {
	for {
		s.mu.Lock()
		spec, ok := s.jobs[name]
		s.mu.Unlock()
		if !ok {
			return
		}

		next, found, err := loadNextRun(ctx, name)
		if err != nil || !found {
			if err != nil {
				logger.Logger.Error("Failed to load job schedule, retrying in 1m",
					zap.String("job", name),
					zap.Error(err),
				)
			}
			next = time.Now().Add(time.Minute)
		}

		delay := time.Until(next)
		if delay < 0 {
			delay = 0
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-wake:
			// 排期被重注册改写，回头重读
			timer.Stop()
			continue
		case <-timer.C:
		}

		s.fire(ctx, spec)

		if err := saveNextRun(ctx, name, time.Now().Add(spec.Period)); err != nil {
			logger.Logger.Error("Failed to advance job schedule",
				zap.String("job", name),
				zap.Error(err),
			)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, spec JobSpec) {
	if spec.RequireNetwork && !s.networkAvailable() {
		logger.Logger.Warn("Job fired without network, will run next period",
			zap.String("job", spec.Name),
		)
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	start := time.Now()
	if err := spec.Run(runCtx); err != nil {
		logger.Logger.Error("Job run failed",
			zap.String("job", spec.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	logger.Logger.Info("Job run completed",
		zap.String("job", spec.Name),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (s *Scheduler) networkAvailable() bool {
	s.mu.Lock()
	probe := s.probe
	s.mu.Unlock()
	return probe()
}

// defaultNetworkProbe 约束检查：能建立出站 TCP 即视为有网
func defaultNetworkProbe() bool {
	conn, err := net.DialTimeout("tcp", "1.1.1.1:443", 3*time.Second)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
