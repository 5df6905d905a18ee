// Package videoref parses canonical video ids out of heterogeneous video
// reference strings and builds replay references that point playback at a
// specific moment.
package videoref
