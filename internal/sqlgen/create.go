package sqlgen

import (
	"fmt"
	"strings"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// BuildCreateTableScript renders the DROP + CREATE script for table with one
// column of columnType per name. An empty columnType means csvload.DefaultColumnType.
func BuildCreateTableScript(table string, columns []string, columnType string) string {
	if columnType == "" {
		columnType = csvload.DefaultColumnType
	}

	quoted := QuoteIdentifier(table)
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("  %s %s", QuoteIdentifier(col), columnType)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "DROP TABLE IF EXISTS %s;\n", quoted)
	fmt.Fprintf(&sb, "CREATE TABLE %s (\n", quoted)
	sb.WriteString(strings.Join(defs, ",\n"))
	fmt.Fprintf(&sb, "\n) %s;\n\n", csvload.TableOptions)
	return sb.String()
}

// BuildInsertScript renders literal multi-row INSERT statements for rows,
// batchSize rows per statement. Each row holds one value per column, already
// aligned to columns; nil renders as NULL.
func BuildInsertScript(table string, columns []string, rows [][]*string, batchSize int) string {
	if len(rows) == 0 || len(columns) == 0 {
		return ""
	}
	if batchSize <= 0 {
		batchSize = csvload.DefaultScriptBatchSize
	}

	head := fmt.Sprintf("INSERT INTO %s (%s) VALUES\n",
		QuoteIdentifier(table), strings.Join(QuoteIdentifiers(columns), ", "))

	var sb strings.Builder
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))

		tuples := make([]string, 0, end-start)
		for _, row := range rows[start:end] {
			values := make([]string, len(columns))
			for i := range columns {
				if i < len(row) && row[i] != nil {
					values[i] = QuoteLiteral(*row[i])
				} else {
					values[i] = "NULL"
				}
			}
			tuples = append(tuples, "("+strings.Join(values, ", ")+")")
		}

		sb.WriteString(head)
		sb.WriteString(strings.Join(tuples, ",\n"))
		sb.WriteString(";\n")
	}
	return sb.String()
}
