// Package history persists clustering runs in SQLite so earlier results can
// be listed, inspected, and pruned from the CLI.
//
// The store owns schema creation (serialised across processes with a file
// lock next to the database), busy retries, and the mapping between Run
// values and the runs/clusters/cluster_members tables. Open returns
// ErrSchemaMismatch when an existing database was written by an incompatible
// version; delete the file to start over.
package history
