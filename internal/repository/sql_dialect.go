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

func isPostgres(dialect string) bool {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return true
	default:
		return false
	}
}

// jsonArrayContainsLikeExpr 构建 JSON 字符串数组任一元素模糊匹配的表达式。
func jsonArrayContainsLikeExpr(dialect, column string) string {
	if isPostgres(dialect) {
		return fmt.Sprintf("EXISTS (SELECT 1 FROM jsonb_array_elements_text(COALESCE(%s::jsonb, '[]'::jsonb)) AS elem(v) WHERE elem.v ILIKE ?)", column)
	}
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(COALESCE(%s, '[]')) WHERE LOWER(json_each.value) LIKE ?)", column)
}

// buildSearchCondition 构建文本列 + JSON 数组列的不区分大小写模糊条件，并返回参数数量。
func buildSearchCondition(db *gorm.DB, textColumns, jsonArrayColumns []string) (string, int) {
	return buildSearchConditionByDialect(dbDialectName(db), textColumns, jsonArrayColumns)
}

func buildSearchConditionByDialect(dialect string, textColumns, jsonArrayColumns []string) (string, int) {
	parts := make([]string, 0, len(textColumns)+len(jsonArrayColumns))
	postgres := isPostgres(dialect)

	for _, column := range textColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		if postgres {
			parts = append(parts, fmt.Sprintf("%s ILIKE ?", trimmed))
		} else {
			// sqlite 的 LIKE 只对 ASCII 忽略大小写
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", trimmed))
		}
	}
	for _, column := range jsonArrayColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, jsonArrayContainsLikeExpr(dialect, trimmed))
	}
	if len(parts) == 0 {
		return "", 0
	}
	return "(" + strings.Join(parts, " OR ") + ")", len(parts)
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
