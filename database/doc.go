// Package database manages the Bun connection to mysql, postgres (lib/pq or
// pgx) and sqlite, creates the registered tables and their foreign keys,
// classifies driver errors and instruments queries with logging hooks and
// prometheus metrics.
package database
