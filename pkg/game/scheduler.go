package game

import (
	"sort"
	"sync"
)

// TimerID 定时器句柄，0 表示无效
type TimerID uint64

type scheduledTimer struct {
	id        TimerID
	due       float64 // 到期时刻（调度器时钟，秒）
	fn        func()
	cancelled bool
}

// Scheduler 单线程协作式调度器
//
// 所有回调都在调用 Update 的 goroutine（即游戏主循环）上执行：
//   - After：在调度器时钟推进到指定时刻后执行
//   - Post：可从任意 goroutine 投递，下一次 Update 时执行
//   - Go：在后台 goroutine 执行耗时任务，完成后把 done 投递回主循环
//
// 调度器时钟只由 Update(dt) 推进，与墙钟无关，测试可精确控制。
type Scheduler struct {
	now    float64
	nextID TimerID
	timers []*scheduledTimer
	firing []*scheduledTimer // 本次 Update 中已到期、尚未执行的定时器

	mu     sync.Mutex
	posted []func()

	inflight sync.WaitGroup
}

// NewScheduler 创建调度器，时钟从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now 返回调度器当前时刻（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 在 seconds 秒后执行 fn；seconds <= 0 时在下一次 Update 执行
func (s *Scheduler) After(seconds float64, fn func()) TimerID {
	s.nextID++
	s.timers = append(s.timers, &scheduledTimer{
		id:  s.nextID,
		due: s.now + seconds,
		fn:  fn,
	})
	return s.nextID
}

// Cancel 取消尚未执行的定时器，返回是否确实取消了一个定时器
func (s *Scheduler) Cancel(id TimerID) bool {
	if id == 0 {
		return false
	}
	for i, t := range s.timers {
		if t.id == id {
			t.cancelled = true
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	for _, t := range s.firing {
		if t.id == id && !t.cancelled {
			t.cancelled = true
			return true
		}
	}
	return false
}

// Pending 返回尚未执行的定时器数量
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Post 投递一个回调到主循环，可从任意 goroutine 调用
func (s *Scheduler) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

// Go 在后台 goroutine 中执行 work，完成后在主循环上执行 done
//
// work 不得触碰主循环拥有的状态；结果通过闭包交给 done。
func (s *Scheduler) Go(work func(), done func()) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		work()
		if done != nil {
			s.Post(done)
		}
	}()
}

// Update 推进调度器时钟并执行到期回调
// 顺序：先执行投递的回调，再按到期时刻执行定时器
func (s *Scheduler) Update(deltaTime float64) {
	s.now += deltaTime
	s.drainPosted()
	s.fireDue()
}

// Flush 等待所有后台任务结束并执行它们投递的回调，不推进时钟
// 仅供测试与退出流程使用；会阻塞调用方
func (s *Scheduler) Flush() {
	s.inflight.Wait()
	s.drainPosted()
}

func (s *Scheduler) drainPosted() {
	s.mu.Lock()
	posted := s.posted
	s.posted = nil
	s.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
}

// fireDue 执行本次推进时已到期的定时器
// 回调中新建的定时器即使已到期也留到下一次 Update，避免同帧无限连锁
func (s *Scheduler) fireDue() {
	var due []*scheduledTimer
	remaining := s.timers[:0]
	for _, t := range s.timers {
		if t.due <= s.now {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	s.timers = remaining
	if len(due) == 0 {
		return
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	s.firing = due
	for _, t := range due {
		// 前一个回调可能取消了后面的定时器
		if t.cancelled {
			continue
		}
		t.cancelled = true
		t.fn()
	}
	s.firing = nil
}
