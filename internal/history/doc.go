// Package history provides SQLite-based storage for generated dictionaries.
//
// Every generation run can store a snapshot of the dictionary it produced.
// Snapshots of the same source document form a timeline that the compare
// command walks to detect schema drift between runs.
//
// The store uses modernc.org/sqlite, so the database is a single CGO-free
// file that travels with the project.
package history
