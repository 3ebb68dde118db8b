package csvload

import "context"

// TableCreator derives a table definition from a CSV header and applies it.
type TableCreator interface {
	// CreateTable drops any existing table with the configured name and
	// recreates it with one text column per CSV header.
	CreateTable(ctx context.Context, config CreateConfig) (*CreateResult, error)
}

// RowInserter replaces a table's contents with the rows of a CSV.
type RowInserter interface {
	// InsertRows truncates the configured table and bulk-inserts every CSV row.
	InsertRows(ctx context.Context, config InsertConfig) (*InsertResult, error)
}
