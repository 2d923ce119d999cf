// Package watch regenerates the glossary site whenever one of its source
// files changes, and optionally on a fixed interval.
//
// Changes are detected with fsnotify on the parent directories of the watched
// files, so editors that save by renaming a temporary file are seen too.
// Bursts of events are debounced into one rebuild, and rebuilds never overlap:
// a request arriving during a rebuild schedules exactly one follow-up.
package watch
