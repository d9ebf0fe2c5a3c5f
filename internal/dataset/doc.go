// Package dataset loads the digital transformation index spreadsheet and
// exposes it as an immutable table with derived projections.
//
// The loader tries an ordered list of candidate file paths and parses the
// first one that exists; absence of every candidate is the distinct
// ErrDataNotFound condition. Parsing locates the header row by column name
// (Chinese or English), coerces entity codes to exact strings, and
// validates every row once at load time so schema mismatches surface
// immediately instead of deep inside aggregation.
//
// A Dataset is never mutated after construction. Sorted code and year
// lists, the code-to-name registry, and all selection queries are pure
// projections of the loaded rows.
package dataset
