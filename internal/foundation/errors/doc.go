// Package errors provides the classified error primitives used across issuebuilder.
//
// A ClassifiedError carries a category (config, filesystem, image, template, ...),
// a severity and a small structured context. The CLI adapter maps categories to
// process exit codes so scripts can tell a broken configuration from a broken
// image without parsing messages.
//
// Example usage:
//
//	err := errors.ImageError("thumbnail failed").
//		WithContext("issue", issueID).
//		WithContext("page", page.File).
//		WithCause(originalErr).
//		Build()
package errors
