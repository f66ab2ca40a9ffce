// Package repository provides a generic Bun repository for CRUD, filtering,
// pagination and transactions, plus the member and team repositories with
// the conditional member searches.
package repository
