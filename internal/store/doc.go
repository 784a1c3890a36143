// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the HTTP handlers, so request handling stays independent of the
// database and the cache in front of it.
package store
