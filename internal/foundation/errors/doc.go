// Package errors provides the classified error primitives shared by sitenav.
//
// A ClassifiedError carries a category (config, validation, filesystem, ...),
// a severity and structured context. The CLI adapter turns those categories
// into process exit codes so that scripts and CI jobs can tell a broken
// navigation file apart from a missing tool configuration.
//
// Example usage:
//
//	err := errors.ConfigError("site file not found").
//		WithContext("file", path).
//		WithCause(statErr).
//		Build()
package errors
