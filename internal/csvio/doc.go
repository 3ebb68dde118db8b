// Package csvio reads CSV files into csvload rows.
//
// Header names are normalized into identifier-like column names before they
// are used as row keys: lowercase, only [a-z0-9 ] kept, whitespace runs
// replaced by a single underscore.
package csvio
