// Package app wires the sales dashboard together and manages its lifecycle.
//
// # Initialization Flow
//
//  1. Load configuration from the environment and an optional YAML file
//  2. Initialize logging and OpenTelemetry
//  3. Connect the record store and load the model concurrently
//  4. Build services, handlers and middleware
//  5. Serve HTTP until SIGINT or SIGTERM
//
// # Record stores
//
// The sheets source reads and edits a Google Sheets worksheet and mounts the
// /api/records routes. The file source reads a local CSV or XLSX export and
// serves the dashboard read-only.
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// Initialization errors are returned to the caller; the package never calls
// os.Exit.
package app
