package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeCondition 构建大小写不敏感的 LIKE 条件，postgres 用 ILIKE。
func likeCondition(db *gorm.DB, column string) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return fmt.Sprintf("%s ILIKE ?", column)
	default:
		return fmt.Sprintf("%s LIKE ?", column)
	}
}

// monthExpr 构建按月分组表达式，返回 01..12，兼容 sqlite 与 postgres。
func monthExpr(db *gorm.DB, column string) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return fmt.Sprintf("to_char(%s, 'MM')", column)
	default:
		return fmt.Sprintf("strftime('%%m', %s)", column)
	}
}

// weekdayExpr 构建按星期分组表达式，返回 0..6（0 为周日），兼容 sqlite 与 postgres。
func weekdayExpr(db *gorm.DB, column string) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		// postgres 的 'D' 返回 1..7（1 为周日），减 1 对齐 sqlite 的 %w
		return fmt.Sprintf("cast(cast(to_char(%s, 'D') as int) - 1 as text)", column)
	default:
		return fmt.Sprintf("strftime('%%w', %s)", column)
	}
}
