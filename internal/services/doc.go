// Package services provides shared error classification and context
// annotation helpers used by the external tool clients and the tool
// operations built on top of them.
package services
