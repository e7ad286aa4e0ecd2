// Package mcp implements the namespace registry that every consumer (the
// HTTP endpoint, the CLI, the chat agent and the MCP protocol server) uses to
// read cached subscription data.
//
// A namespace is a string of the form "scheme://resource". The set of
// namespaces is fixed when the [Registry] is built and never changes
// afterwards, so a single Registry may be shared between goroutines.
package mcp
