// Package preview serves a built site over HTTP and rebuilds it when the
// sources change. Changes are detected with fsnotify and, optionally, by a
// periodic rescan; bursts of events are debounced into a single rebuild.
package preview
