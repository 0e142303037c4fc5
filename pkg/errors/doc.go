// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "failed to list user units",
//	    ctx.Err(),
//	    map[string]interface{}{
//	        "command": "systemctl",
//	        "kind": "service",
//	    },
//	)
package errors
