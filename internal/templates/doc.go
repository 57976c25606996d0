// Package templates renders the issue, index and about pages with
// html/template. Templates come from a theme directory on disk or from the
// default theme embedded in the binary.
package templates
