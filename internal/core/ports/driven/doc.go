// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Connector: Fetches and normalises candidates from one source
//   - ConnectorFactory: Creates connectors from settings
//   - StarStore: Durable record persistence, backups and legacy migration
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RepoEnricher: Re-fetches repository metadata. Without it, markdown
//     list records keep link-level fidelity.
//   - ReadmeFetcher: Reads README files of owner/repo lists. Without it,
//     only local markdown files can be synced.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
