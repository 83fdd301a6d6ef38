package domain

import "fmt"

const (
	// NoHostname is shown in titles for hosts without any hostname
	NoHostname = "<no hostname>"
	// NoAddress is shown in titles for hosts without any address
	NoAddress = "<no address>"
)

// AddressKind distinguishes the variants of Address
type AddressKind string

const (
	AddressIP  AddressKind = "ip"
	AddressMAC AddressKind = "mac"
)

// Address is an IP or MAC address reported for a host.
// Two addresses are equal only when both kind and value match.
type Address struct {
	Kind  AddressKind `json:"kind" yaml:"kind"`
	Value string      `json:"value" yaml:"value"`
}

// IPAddress creates an IP address variant
func IPAddress(value string) Address {
	return Address{Kind: AddressIP, Value: value}
}

// MACAddress creates a MAC address variant
func MACAddress(value string) Address {
	return Address{Kind: AddressMAC, Value: value}
}

// String returns the underlying address string
func (a Address) String() string {
	return a.Value
}

// Hostname is a DNS name reported for a host
type Hostname struct {
	Name string `json:"name" yaml:"name"`
}

// HostStatus is the reachability state of a host (e.g. up/syn-ack)
type HostStatus struct {
	State  string `json:"state" yaml:"state"`
	Reason string `json:"reason" yaml:"reason"`
}

// String formats the status as "state (reason)"
func (s HostStatus) String() string {
	return fmt.Sprintf("%s (%s)", s.State, s.Reason)
}

// PortStatus is the state of a single port (e.g. open/syn-ack)
type PortStatus struct {
	State  string `json:"state" yaml:"state"`
	Reason string `json:"reason" yaml:"reason"`
}

// ServiceInfo describes the service detected on a port
type ServiceInfo struct {
	Name string `json:"name" yaml:"name"`
}

// Port is one scanned port of a host
type Port struct {
	Protocol string       `json:"protocol" yaml:"protocol"`
	Number   int          `json:"number" yaml:"number"`
	Status   PortStatus   `json:"status" yaml:"status"`
	Service  *ServiceInfo `json:"service,omitempty" yaml:"service,omitempty"`
}

// ServiceName returns the detected service name, or "" when none was detected
func (p Port) ServiceName() string {
	if p.Service == nil {
		return ""
	}
	return p.Service.Name
}

// Host is a single discovered machine or interface from one scan.
// Scan results carry no stable identifier; identity is derived from addresses.
type Host struct {
	Status    HostStatus `json:"status" yaml:"status"`
	Ports     []Port     `json:"ports" yaml:"ports"`
	Addresses []Address  `json:"addresses" yaml:"addresses"`
	Hostnames []Hostname `json:"hostnames" yaml:"hostnames"`
}

// Title returns a human label built from the first hostname and first address,
// e.g. "router.lan (192.168.1.1)"
func (h Host) Title() string {
	name := NoHostname
	if len(h.Hostnames) > 0 {
		name = h.Hostnames[0].Name
	}

	addr := NoAddress
	if len(h.Addresses) > 0 {
		addr = h.Addresses[0].String()
	}

	return fmt.Sprintf("%s (%s)", name, addr)
}

// Clone returns a deep copy of the host so callers can sort or filter
// its lists without touching the original snapshot
func (h Host) Clone() Host {
	clone := Host{
		Status:    h.Status,
		Ports:     ClonePorts(h.Ports),
		Addresses: append([]Address(nil), h.Addresses...),
		Hostnames: append([]Hostname(nil), h.Hostnames...),
	}
	return clone
}

// ClonePorts deep-copies a port list, including service info
func ClonePorts(ports []Port) []Port {
	if ports == nil {
		return nil
	}
	out := make([]Port, len(ports))
	for i, p := range ports {
		out[i] = p
		if p.Service != nil {
			svc := *p.Service
			out[i].Service = &svc
		}
	}
	return out
}
