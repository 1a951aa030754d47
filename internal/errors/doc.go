// Package errors maps decimalog failures to process exit codes.
//
// Commands return an [ExitError] carrying the code and a one-line suggestion
// that main prints after the message:
//
//	ExitSuccess  0  the command completed
//	ExitUser     1  bad arguments, invalid configuration, doctor warnings
//	ExitSystem   2  unwritable folders and other I/O failures, doctor errors
//
// [FromSetup] classifies the errors returned by logging.Setup, and [Code]
// extracts the exit code from any error chain. The sentinels (ErrUnknownKey,
// ErrUnknownLevel, ErrInvalidConfig, ErrChecksFailed) stay reachable through
// errors.Is once wrapped.
package errors
