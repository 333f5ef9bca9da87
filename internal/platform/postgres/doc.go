// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles query
// execution and the mapping between domain entities and database records,
// translating driver errors into store and domain errors.
package postgres
