// Package services defines the shared failure taxonomy for subseek components.
//
// Errors raised by the reference parser, track fetcher, and corpus store are
// tagged with one of the exported sentinel errors so the ingest coordinator can
// classify a failure without inspecting message text. Wrap builds uniformly
// shaped error messages that carry component and operation context while
// preserving errors.Is matching against both the marker and the underlying
// cause.
package services
