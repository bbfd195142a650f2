// Package store persists point sets in SQLite so a haystack can be reloaded
// with dense ids across process restarts. Distance predicates run in SQL
// through the pt_distance function registered by the engine package.
package store
