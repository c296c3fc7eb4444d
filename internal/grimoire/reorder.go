package grimoire

import (
	"context"
	"errors"
	"fmt"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
)

// ErrConsistency 表示一次排序持久化只完成了一部分。
// 调用方必须丢弃乐观的客户端顺序，从存储重新加载权威状态。
var ErrConsistency = errors.New("排序持久化未完整写入")

// OrderWriter 是排序持久化的最小写入端口。
// 生产实现走GORM；测试可以注入会失败的实现来验证部分失败语义。
type OrderWriter interface {
	UpdateSortOrder(ctx context.Context, id uint, order int) error
}

// gormOrderWriter 是OrderWriter的数据库实现，只更新指定角色名下的记录
type gormOrderWriter struct {
	characterID uint
}

func (w gormOrderWriter) UpdateSortOrder(ctx context.Context, id uint, order int) error {
	res := database.DB.WithContext(ctx).
		Model(&KnownSpell{}).
		Where("id = ? AND character_id = ?", id, w.characterID).
		Update("sort_order", order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("找不到ID为 %d 的已知奇术", id)
	}
	return nil
}

// PersistOrder 按新的显示顺序为每条记录分配 sortOrder = 1..N 并逐条独立持久化。
// 不提供事务性的全有或全无保证：遇到第一个失败就停止，
// 返回包装了ErrConsistency的错误，由调用方重新加载权威顺序。
func PersistOrder(ctx context.Context, w OrderWriter, ids []uint) error {
	for i, id := range ids {
		if err := w.UpdateSortOrder(ctx, id, i+1); err != nil {
			return fmt.Errorf("%w: 第 %d 条 (ID %d): %v", ErrConsistency, i+1, id, err)
		}
	}
	return nil
}
