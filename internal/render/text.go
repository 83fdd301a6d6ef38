// Package render formats hosts, host diffs and deltas as plain text.
package render

import (
	"fmt"
	"strings"

	"scandiff/internal/domain"
	"scandiff/internal/reconcile"
)

// Placeholder is printed in place of an empty list
const Placeholder = "<nothing to show>"

// Host renders every field of a host, one line per field
func Host(h domain.Host) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s\n", h.Status)
	fmt.Fprintf(&b, "Ports: %s\n", Ports(h.Ports))
	fmt.Fprintf(&b, "Addresses: %s\n", Addresses(h.Addresses))
	fmt.Fprintf(&b, "Hostnames: %s\n", Hostnames(h.Hostnames))
	return b.String()
}

// Diff renders one "old => new" line per changed field.
// Unchanged fields are omitted.
func Diff(d reconcile.HostDiff) string {
	var b strings.Builder
	if d.Status != nil {
		fmt.Fprintf(&b, "Status: %s => %s\n", d.Status.Old, d.Status.New)
	}
	if d.Ports != nil {
		fmt.Fprintf(&b, "Ports: %s => %s\n", Ports(d.Ports.Old), Ports(d.Ports.New))
	}
	if d.Addresses != nil {
		fmt.Fprintf(&b, "Addresses: %s => %s\n", Addresses(d.Addresses.Old), Addresses(d.Addresses.New))
	}
	if d.Hostnames != nil {
		fmt.Fprintf(&b, "Hostnames: %s => %s\n", Hostnames(d.Hostnames.Old), Hostnames(d.Hostnames.New))
	}
	return b.String()
}

// Delta renders a header line followed by the block for its kind.
// Gone hosts only get a header. d.Kind must equal one of reconcile.AllKinds;
// anything else panics, including differently cased names, so callers
// rendering decoded reports must check kinds first.
func Delta(d reconcile.Delta) string {
	header := Header(d)

	switch d.Kind {
	case reconcile.DeltaChanged:
		if d.Diff == nil {
			return header + "\n"
		}
		return header + "\n" + Diff(*d.Diff)
	case reconcile.DeltaUnchanged, reconcile.DeltaNew:
		if d.Host == nil {
			return header + "\n"
		}
		return header + "\n" + Host(*d.Host)
	case reconcile.DeltaGone:
		return header + "\n"
	default:
		panic(fmt.Sprintf("render: unhandled delta kind %q", d.Kind))
	}
}

// Header returns the "<Kind> Host: <title>" line for a delta, without newline
func Header(d reconcile.Delta) string {
	return fmt.Sprintf("%s Host: %s", KindLabel(d.Kind), d.Title())
}

// KindLabel returns the capitalised label used in headers.
// It panics unless kind is exactly one of reconcile.AllKinds.
func KindLabel(kind reconcile.DeltaKind) string {
	switch kind {
	case reconcile.DeltaChanged:
		return "Changed"
	case reconcile.DeltaUnchanged:
		return "Unchanged"
	case reconcile.DeltaGone:
		return "Gone"
	case reconcile.DeltaNew:
		return "New"
	default:
		panic(fmt.Sprintf("render: unhandled delta kind %q", kind))
	}
}

// Port renders "protocol number (reason)" with " [service]" when detected
func Port(p domain.Port) string {
	s := fmt.Sprintf("%s %d (%s)", p.Protocol, p.Number, p.Status.Reason)
	if p.Service != nil {
		s += fmt.Sprintf(" [%s]", p.Service.Name)
	}
	return s
}

// Ports renders a comma-joined port list
func Ports(ports []domain.Port) string {
	return join(ports, Port)
}

// Addresses renders a comma-joined address list
func Addresses(addrs []domain.Address) string {
	return join(addrs, domain.Address.String)
}

// Hostnames renders a comma-joined hostname list
func Hostnames(names []domain.Hostname) string {
	return join(names, func(h domain.Hostname) string { return h.Name })
}

func join[T any](items []T, format func(T) string) string {
	if len(items) == 0 {
		return Placeholder
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = format(item)
	}
	return strings.Join(parts, ", ")
}
