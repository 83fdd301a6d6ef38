// Command scandiff compares two nmap scans and reports which hosts are
// gone, new, changed or unchanged.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
