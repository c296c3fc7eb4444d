package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// uniqueViolationCode 是PostgreSQL唯一约束冲突的SQLSTATE编码
const uniqueViolationCode = "23505"

// ErrConflict 表示一次写入因唯一约束冲突而失败。
// 调用方应向用户提示“同名记录已存在”，且不应自动重试。
var ErrConflict = errors.New("唯一约束冲突")

// IsConflict 判断一个持久化错误是否为唯一约束冲突。
// 同时覆盖GORM的错误翻译、PostgreSQL的SQLSTATE和SQLite的约束错误码，
// 以便在两种驱动下表现一致。
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		sqliteErr.Code == sqlite3.ErrConstraint &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return true
	}

	return false
}

// Classify 把任意持久化错误归入错误分类：
// 冲突错误返回ErrConflict（包装原始错误），其余原样返回（视为瞬时IO错误）。
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if IsConflict(err) {
		return errors.Join(ErrConflict, err)
	}
	return err
}
