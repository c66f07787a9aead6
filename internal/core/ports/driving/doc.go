// Package driving provides interfaces for use-case entry points
// (primary/inbound ports). The HTTP, CLI, TUI and MCP adapters depend
// on these interfaces; core services implement them.
package driving
