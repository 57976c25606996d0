// Package site orchestrates a build: it scans the issues, renders page
// artifacts and HTML, copies the static theme files and assets, and records
// the run in a BuildReport.
//
// A build runs as an ordered list of stages. Each stage is timed and its
// outcome classified as success, warning, fatal or canceled; the first fatal
// or canceled stage aborts the build. Optional assets (stylesheet, theme
// script, assets tree, about content, cover dimensions) only ever produce
// warnings.
//
// Stages write into a staging directory next to the output root; the final
// stage swaps it in, so a failed build leaves the previous site as it was.
package site
