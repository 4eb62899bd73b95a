// Package errors provides structured error types for the binary decoder.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the absolute stream offset at which the problem was detected,
// optional expected/actual descriptions and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRead, errors.KindMalformed).
//		Offset(12).
//		Expected("0xEA").
//		Actual("0xEB").
//		Detail("invalid version marker").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Malformed(errors.PhaseRead, offset, "invalid type octet 0x%02X", octet)
//	err := errors.Protocol("skip requested outside a container")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
