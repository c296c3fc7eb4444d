package lifecycle

import (
	"context"
	"time"
)

// Handle 是Manager分发给单个后台服务的生命周期凭据。
// 服务通过它感知停机信号，并在退出前调用Close向Manager签退。
type Handle struct {
	ctx context.Context

	// Close 向Manager报告本服务已经退出，应在服务Goroutine里defer调用
	Close func()
}

// Ctx 返回句柄承载的上下文
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回停机信号channel，供服务在select中监听
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在停机信号发出后返回取消原因
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 休眠指定时长；期间收到停机信号则立即返回取消原因。
// 后台轮询循环应当用它代替time.Sleep，否则停机要等完整个间隔。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-h.Done():
		return h.Err()
	case <-timer.C:
		return nil
	}
}
