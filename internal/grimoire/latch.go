package grimoire

import "sync"

// toggleLatch 保证同一把钥匙同时最多只有一次在途操作。
// 已知奇术的切换是本服务唯一需要的并发控制：两次重叠的切换请求
// 如果交错执行，会把一次“取消”变成“重复添加”。
type toggleLatch struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

var globalToggleLatch = &toggleLatch{
	inFlight: make(map[string]bool),
}

// tryAcquire 尝试取得指定钥匙的闩。已被占用时返回false，调用方应直接拒绝请求。
func (l *toggleLatch) tryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight[key] {
		return false
	}
	l.inFlight[key] = true
	return true
}

// release 释放指定钥匙的闩
func (l *toggleLatch) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, key)
}

// tryAcquireAll 以全有或全无的方式取得一组钥匙的闩。
// 任何一把已被占用则全部不取，返回false。
func (l *toggleLatch) tryAcquireAll(keys []string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range keys {
		if l.inFlight[key] {
			return false
		}
	}
	for _, key := range keys {
		l.inFlight[key] = true
	}
	return true
}

// releaseAll 释放一组钥匙的闩
func (l *toggleLatch) releaseAll(keys []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range keys {
		delete(l.inFlight, key)
	}
}
