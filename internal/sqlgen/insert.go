package sqlgen

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// Statement is one parameterized SQL statement.
type Statement struct {
	SQL  string
	Args []any
	Rows int
}

// TruncateStatement empties table.
func TruncateStatement(table string) string {
	return "TRUNCATE TABLE " + QuoteIdentifier(table)
}

// RowsPerStatement returns how many rows of width columns fit in one INSERT,
// honouring both MySQL's placeholder limit and batchSize when positive.
func RowsPerStatement(columns, batchSize int) int {
	if columns <= 0 {
		return 0
	}
	limit := csvload.MaxPlaceholders / columns
	if limit < 1 {
		limit = 1
	}
	if batchSize > 0 && batchSize < limit {
		return batchSize
	}
	return limit
}

// BuildBulkInsert renders rows as parameterized multi-row INSERT statements on
// columns. A column missing from a row, or holding an empty string, binds NULL.
func BuildBulkInsert(table string, columns []string, rows []*csvload.Row, batchSize int) ([]Statement, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns to insert into %s", QuoteIdentifier(table))
	}
	if len(rows) == 0 {
		return nil, nil
	}

	per := RowsPerStatement(len(columns), batchSize)
	quotedCols := QuoteIdentifiers(columns)

	var stmts []Statement
	for start := 0; start < len(rows); start += per {
		end := min(start+per, len(rows))

		builder := sq.Insert(QuoteIdentifier(table)).Columns(quotedCols...)
		for _, row := range rows[start:end] {
			builder = builder.Values(rowValues(row, columns)...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build INSERT for rows %d-%d: %w", start+1, end, err)
		}
		stmts = append(stmts, Statement{SQL: query, Args: args, Rows: end - start})
	}
	return stmts, nil
}

func rowValues(row *csvload.Row, columns []string) []any {
	values := make([]any, len(columns))
	for i, col := range columns {
		v, ok := row.Get(col)
		if !ok || v == "" {
			values[i] = nil
			continue
		}
		values[i] = v
	}
	return values
}
