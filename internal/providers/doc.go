// Package providers implements the tool groups exposed by the server:
// contributions, links, profile, and observability. Each provider
// publishes a Definition consumed by the service registry and executes
// its tools against the Stars API adapter, returning the uniform Result
// envelope. Domain counters (contributions created, updated, deleted)
// are recorded here, not in the transport layer.
package providers
