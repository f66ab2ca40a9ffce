// Package roster exposes the member and team services: joining members,
// conditional member search as a list, an offset page or a cursor slice,
// and demo data seeding.
package roster
