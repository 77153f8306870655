// Package validation checks configuration structs against their
// `validate` struct tags using go-playground/validator and reports the
// failures as a single errors.AppError.
package validation
