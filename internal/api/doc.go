// Package api exposes the corpus read path over HTTP.
//
// The server is query-only: search, context windows, stats, and the video
// list. Ingestion stays on the CLI, so the handlers hold no write state.
// Responses use plain JSON shapes; an empty result list is a 200 with an
// empty array, never an error.
package api
