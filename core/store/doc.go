// Package store is the Entity Store of the reconcile engine, a thin layer over GORM.
//
// It keeps two outcomes of a lookup apart: ErrNotFound means the row is absent, any other
// error means the query itself failed and the caller must abort its batch. Inserts go
// through InsertIfAbsent, which relies on the unique indexes declared in core/graph and
// never creates a second row for the same identity, even when two writers race.
package store
