package grimoire

import "testing"

func TestToggleLatchRejectsOverlappingAcquire(t *testing.T) {
	l := &toggleLatch{inFlight: make(map[string]bool)}

	if !l.tryAcquire("7|czarna dama|black queen") {
		t.Fatalf("空闲的钥匙应能取得闩")
	}
	if l.tryAcquire("7|czarna dama|black queen") {
		t.Fatalf("同一把钥匙的第二次请求必须被拒绝")
	}
}

func TestToggleLatchIndependentKeys(t *testing.T) {
	l := &toggleLatch{inFlight: make(map[string]bool)}

	if !l.tryAcquire("7|a|") {
		t.Fatalf("第一把钥匙应能取得闩")
	}
	if !l.tryAcquire("8|a|") {
		t.Fatalf("不同钥匙互不阻塞")
	}
}

func TestToggleLatchAllOrNothingAcquire(t *testing.T) {
	l := &toggleLatch{inFlight: make(map[string]bool)}

	if !l.tryAcquireAll([]string{"7|pl|a", "7|en|b"}) {
		t.Fatalf("空闲的一组钥匙应能整组取得")
	}
	// 与已持有组有一把钥匙重叠：整组都不应取得
	if l.tryAcquireAll([]string{"7|en|b", "7|pl|c"}) {
		t.Fatalf("有重叠钥匙的请求必须整组被拒绝")
	}
	if !l.tryAcquire("7|pl|c") {
		t.Fatalf("被拒绝的请求不应留下任何已占用的钥匙")
	}
}

func TestToggleKeysExcludeAcrossNameForms(t *testing.T) {
	l := &toggleLatch{inFlight: make(map[string]bool)}

	// 只带波兰文名的切换
	if !l.tryAcquireAll(toggleKeys(7, "Czarna Dama", "")) {
		t.Fatalf("第一次切换应能取得闩")
	}
	// 同一条目，这次两个名称都带：共享波兰文名钥匙，必须互斥
	if l.tryAcquireAll(toggleKeys(7, "czarna dama", "Black Queen")) {
		t.Fatalf("用不同名称形式指向同一条目的切换必须互斥")
	}
	// 只带英文名也一样
	if !l.tryAcquireAll(toggleKeys(7, "", "Black Queen")) {
		t.Fatalf("英文名此时尚未被占用，应能取得")
	}
	if l.tryAcquireAll(toggleKeys(7, "Inna Nazwa", "black queen")) {
		t.Fatalf("英文名重叠的切换必须互斥")
	}
	// 别的角色不受影响
	if !l.tryAcquireAll(toggleKeys(8, "Czarna Dama", "Black Queen")) {
		t.Fatalf("不同角色的切换互不阻塞")
	}
}

func TestToggleLatchReleaseAllowsReacquire(t *testing.T) {
	l := &toggleLatch{inFlight: make(map[string]bool)}

	key := "7|a|b"
	if !l.tryAcquire(key) {
		t.Fatalf("应能取得闩")
	}
	l.release(key)
	if !l.tryAcquire(key) {
		t.Fatalf("释放后应能再次取得闩")
	}
}
