// Package store defines the storage-agnostic collection contracts the
// feature layer depends on, along with store-level errors and the
// transaction runner. Implementations (adapters) live under
// internal/platform.
package store
