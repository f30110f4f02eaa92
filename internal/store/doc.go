// Package store defines the persistence interfaces for the projection
// engine: loading assumption aggregates and recording calc runs with
// their monthly summary rows. The interfaces keep the engine and
// service layers independent of the PostgreSQL implementation.
package store
