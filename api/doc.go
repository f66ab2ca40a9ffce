// Package api exposes the member and team searches over HTTP with gin.
//
// Routes:
//
//	GET /v1/members, /v2/members   full list matching the query condition
//	GET /v3/members?page=&size=&sort=field,dir   offset page with totals
//	GET /v4/members?lastMemberId=&size=          cursor slice
//	GET /teams/:id, /teams/:id/members
//	GET /health, /health/live, /metrics
//
// Condition parameters are username, teamName, ageGoe and ageLoe. Errors
// are returned as ErrorPayload: 400 for invalid input, 404 for a missing
// team and 500 otherwise.
package api
