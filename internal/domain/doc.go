// Package domain defines the scan record types shared by scandiff's packages.
//
// Records are produced by the scan loader from nmap XML output and are treated
// as read-only afterwards. The reconcile and render packages borrow them; any
// sorting or filtering happens on copies (see Host.Clone).
//
// # Core Types
//
// Host is one discovered machine with its status, ports, addresses and
// hostnames. Scan output carries no stable host identifier, so identity is
// derived from addresses by the reconcile package.
//
// Address is a two-variant value (IP or MAC). Addresses only compare equal
// within the same variant.
//
// Snapshot is one parsed scan file together with its start time and content
// fingerprint.
//
// # Design Principles
//
// - Plain value types, no behaviour beyond formatting helpers
// - No dependencies on parsing, storage or output packages
package domain
