// Package postgres provides PostgreSQL implementations of the store
// interfaces: the read-only assumption aggregate loader and the run
// ledger (calc runs plus write-once monthly summary rows).
package postgres
