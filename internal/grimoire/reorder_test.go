package grimoire

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type orderWrite struct {
	id    uint
	order int
}

// fakeOrderWriter 记录每次写入，并在写到failAt指定的ID时失败
type fakeOrderWriter struct {
	writes []orderWrite
	failAt uint
}

func (w *fakeOrderWriter) UpdateSortOrder(_ context.Context, id uint, order int) error {
	if w.failAt != 0 && id == w.failAt {
		return fmt.Errorf("模拟的写入失败")
	}
	w.writes = append(w.writes, orderWrite{id: id, order: order})
	return nil
}

func TestPersistOrderAssignsSequentialOrders(t *testing.T) {
	w := &fakeOrderWriter{}

	if err := PersistOrder(context.Background(), w, []uint{3, 1, 2}); err != nil {
		t.Fatalf("全部写入成功时不应返回错误: %v", err)
	}

	want := []orderWrite{{3, 1}, {1, 2}, {2, 3}}
	if len(w.writes) != len(want) {
		t.Fatalf("期望 %d 次写入，得到 %d", len(want), len(w.writes))
	}
	for i := range want {
		if w.writes[i] != want[i] {
			t.Fatalf("第 %d 次写入应为 %+v，得到 %+v", i+1, want[i], w.writes[i])
		}
	}
}

func TestPersistOrderStopsAtFirstFailure(t *testing.T) {
	w := &fakeOrderWriter{failAt: 1}

	err := PersistOrder(context.Background(), w, []uint{3, 1, 2})
	if err == nil {
		t.Fatalf("部分失败必须返回错误")
	}
	if !errors.Is(err, ErrConsistency) {
		t.Fatalf("错误应可判定为ErrConsistency: %v", err)
	}

	// 第一条(ID 3)已写入，第二条(ID 1)失败后立即停止，第三条不再尝试
	if len(w.writes) != 1 || w.writes[0] != (orderWrite{3, 1}) {
		t.Fatalf("失败后不应继续写入，已写入: %+v", w.writes)
	}
}

func TestPersistOrderEmptyList(t *testing.T) {
	w := &fakeOrderWriter{}
	if err := PersistOrder(context.Background(), w, nil); err != nil {
		t.Fatalf("空列表应是无操作: %v", err)
	}
	if len(w.writes) != 0 {
		t.Fatalf("空列表不应产生写入: %+v", w.writes)
	}
}
