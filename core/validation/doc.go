// Package validation wraps go-playground/validator for request DTOs.
//
// Field errors are reported by their JSON path (for example
// "cards[2].master_rank") with a short human readable message, ready to be
// sent in the "errors" object of the response envelope.
package validation
