// Package memory holds in-process repositories for development and tests.
// Data lives only as long as the process.
package memory
