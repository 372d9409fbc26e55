// Package services implements the driving port interfaces.
// Services hold the sync pipeline and query logic and orchestrate
// calls to driven ports (connectors, the record store, the config store).
package services
