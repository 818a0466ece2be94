// Package remote provides the HTTP client for the spreadsheet-backed
// endpoint that stores mamba's videos.
//
// # Overview
//
// The endpoint is a single URL. A GET returns the full snapshot; a POST with
// a JSON body carrying an "action" field mutates one row:
//
//	{"action":"create","id":"1712345678901","person":"...","platform":"Instagram",
//	 "profile":"Profile 1","title":"...","link":"..."}
//	{"action":"delete","id":"1712345678901"}
//	{"action":"updateStatus","id":"1712345678901","newStatus":"Uploaded"}
//	{"action":"updateProfileNames","user":"...","platform":"TikTok",
//	 "profileNames":{"profile1":"...","profile2":"...","profile3":"..."}}
//
// # Snapshot shapes
//
// Two response bodies are accepted on fetch:
//
//   - legacy: a bare JSON array of videos. Records whose profile is not one of
//     the three slots are dropped.
//   - extended: {"videos": [...], "profileConfig": {...}, "passwords": {...}}
//
// # Failure contract
//
// A transport error, a non-2xx status or an undecodable snapshot yields a
// *NetworkError. Nothing is retried or resent; the caller decides what to do.
// Command response bodies are drained but not interpreted.
//
// # Request hygiene
//
// Every request carries a User-Agent and an X-Request-ID header and passes
// through a token-bucket limiter. The limiter delays requests, it never
// drops them.
package remote
