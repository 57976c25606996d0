// Package workspace manages the output directory of a preview session, either
// an ephemeral directory under the system temp dir that is removed on exit or
// a caller-chosen persistent directory.
package workspace
