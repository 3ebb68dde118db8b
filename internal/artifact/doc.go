// Package artifact manages the transient files that bridge pipeline stages:
// the generated create_table.sql script and the output.json row dump.
//
// Storage sits behind the Store interface so services can be exercised
// against MemoryStore in tests and OSStore in production.
package artifact
