// Package git reads the revision of the project checkout a build runs in, so
// build reports can name the source commit.
package git
