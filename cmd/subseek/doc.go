// Command subseek builds and queries a searchable corpus of YouTube
// subtitle tracks.
package main
