package sqlgen

import "strings"

// QuoteIdentifier wraps a table or column name in backticks, doubling any
// embedded backtick.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// QuoteIdentifiers applies QuoteIdentifier to every name.
func QuoteIdentifiers(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = QuoteIdentifier(n)
	}
	return out
}

// EscapeValue doubles embedded single quotes.
func EscapeValue(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

// QuoteLiteral renders v as a MySQL string literal. Backslashes are doubled
// because MySQL treats them as escapes unless NO_BACKSLASH_ESCAPES is set.
func QuoteLiteral(v string) string {
	return "'" + EscapeValue(strings.ReplaceAll(v, `\`, `\\`)) + "'"
}

// Preview shortens sql for error messages.
func Preview(sql string, limit int) string {
	sql = strings.TrimSpace(sql)
	if limit <= 0 || len(sql) <= limit {
		return sql
	}
	return sql[:limit] + "..."
}
