// Package adapter loads scan results from disk into domain snapshots.
//
// The reconcile core never touches files; everything fallible lives here.
//
// # Nmap Loader
//
// NmapLoader reads nmap XML output (nmap -oX) using the Ullaakut/nmap parser
// and converts each host into a domain.Host. IPv4 and IPv6 addresses become
// IP variants and MAC addresses become MAC variants. Ports without a detected
// service carry no service info. The scan start time and a BLAKE2b digest of
// the raw file are kept on the snapshot.
//
// # Folder Mode
//
// LatestPair scans a directory for files with a configured extension, parses
// each one and returns the two snapshots with the latest start times, older
// first. Unparsable files are logged and skipped.
//
// # Errors
//
// Failures are reported as *ScanError with kind ReadFailure or ParseFailure,
// carrying the offending path and the underlying cause. A folder with fewer
// than two usable scans yields ErrNotEnoughScans.
package adapter
