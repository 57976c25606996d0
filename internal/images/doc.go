// Package images produces the per-page artifacts of an issue: the copied
// original, a fixed-width thumbnail in the source format and a size-capped
// lossy web rendition.
//
// RenderIssue fans the pages of one issue out over a bounded errgroup. Tasks
// share no state and each writes distinct paths; the first failure cancels
// the remaining tasks and is returned to the caller.
package images
