// Package cli implements the command-line interface for the unitscope tool.
//
// # Overview
//
// The unitscope CLI inspects the invoking user's service manager: the unit
// directories it searches, the services, sockets, and timers it knows, its
// own health, and the surrounding login-session state. It is designed for
// users running long-lived services under their own manager instance.
//
// # Commands
//
// report - Capture and display the report (also the default command):
//
//	unitscope report [--json] [--output FILE] [--format json|yaml|table]
//
// Prints the terminal report and optionally exports the structured document.
// The export defaults to user_process_mgmt.json when --json is given without
// --output.
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: warn)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Exit Status
//
//	0    the user manager was classified running
//	1    the manager was not running, or the capture failed
//	130  interrupted
//
// Logs go to stderr as structured JSON so they never corrupt an exported
// report on stdout.
package cli
