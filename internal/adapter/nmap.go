package adapter

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	nmap "github.com/Ullaakut/nmap/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"scandiff/internal/domain"
)

// NmapLoader reads nmap XML output (-oX) into snapshots
type NmapLoader struct {
	extensions []string
	log        logrus.FieldLogger
}

var _ Loader = (*NmapLoader)(nil)

// NewNmapLoader creates a loader for nmap XML files
// opts: optional configuration options
func NewNmapLoader(opts ...LoaderOption) *NmapLoader {
	loader := &NmapLoader{
		extensions: []string{".xml"},
		log:        logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(loader)
	}

	return loader
}

// Name returns the loader identifier
func (n *NmapLoader) Name() string {
	return "nmap"
}

// Matches reports whether path has one of the configured extensions
func (n *NmapLoader) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range n.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Load reads and parses one nmap XML file
func (n *NmapLoader) Load(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ScanError{Kind: ReadFailure, Path: path, Err: err}
	}

	snapshot, err := n.parse(path, data)
	if err != nil {
		return nil, err
	}

	n.log.Debugf("Nmap: parsed %s (%d hosts, started %s)", path, len(snapshot.Hosts), snapshot.StartTimeString())
	return snapshot, nil
}

// LoadPair loads the old and new scan files, failing on the first error
func (n *NmapLoader) LoadPair(oldPath, newPath string) (*domain.Snapshot, *domain.Snapshot, error) {
	oldSnap, err := n.Load(oldPath)
	if err != nil {
		return nil, nil, err
	}
	newSnap, err := n.Load(newPath)
	if err != nil {
		return nil, nil, err
	}
	return oldSnap, newSnap, nil
}

// LatestPair loads every scan file in dir and returns the two with the
// latest start times, older first. Files that fail to parse are skipped.
func (n *NmapLoader) LatestPair(dir string) (*domain.Snapshot, *domain.Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, &ScanError{Kind: ReadFailure, Path: dir, Err: err}
	}

	var snapshots []*domain.Snapshot
	for _, entry := range entries {
		if entry.IsDir() || !n.Matches(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		snapshot, err := n.Load(path)
		if err != nil {
			n.log.Warnf("Nmap: skipping %s: %v", path, err)
			continue
		}
		snapshots = append(snapshots, snapshot)
	}

	if len(snapshots) < 2 {
		return nil, nil, fmt.Errorf("%s: found %d: %w", dir, len(snapshots), ErrNotEnoughScans)
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].StartTime.Before(snapshots[j].StartTime)
	})

	older, newer := snapshots[len(snapshots)-2], snapshots[len(snapshots)-1]
	n.log.Infof("Nmap: selected %s and %s from %d scans in %s", older.Path, newer.Path, len(snapshots), dir)
	return older, newer, nil
}

// parse converts raw nmap XML into a snapshot
func (n *NmapLoader) parse(path string, data []byte) (*domain.Snapshot, error) {
	run := &nmap.Run{}
	if err := nmap.Parse(data, run); err != nil {
		return nil, &ScanError{Kind: ParseFailure, Path: path, Err: err}
	}

	sum := blake2b.Sum256(data)
	return &domain.Snapshot{
		Path:        path,
		StartTime:   time.Time(run.Start),
		Fingerprint: hex.EncodeToString(sum[:]),
		Hosts:       convertHosts(run.Hosts),
	}, nil
}

// convertHosts maps nmap host records to domain hosts, keeping scan order
func convertHosts(hosts []nmap.Host) []domain.Host {
	out := make([]domain.Host, 0, len(hosts))
	for _, h := range hosts {
		out = append(out, convertHost(h))
	}
	return out
}

// convertHost maps a single nmap host record
func convertHost(h nmap.Host) domain.Host {
	host := domain.Host{
		Status: domain.HostStatus{
			State:  h.Status.State,
			Reason: h.Status.Reason,
		},
	}

	for _, port := range h.Ports {
		host.Ports = append(host.Ports, convertPort(port))
	}

	for _, addr := range h.Addresses {
		if addr.AddrType == "mac" {
			host.Addresses = append(host.Addresses, domain.MACAddress(addr.Addr))
			continue
		}
		// ipv4 and ipv6 are both IP variants
		host.Addresses = append(host.Addresses, domain.IPAddress(addr.Addr))
	}

	for _, name := range h.Hostnames {
		host.Hostnames = append(host.Hostnames, domain.Hostname{Name: name.Name})
	}

	return host
}

// convertPort maps an nmap port. nmap omits <service> when nothing was
// detected, which leaves an empty service name.
func convertPort(p nmap.Port) domain.Port {
	port := domain.Port{
		Protocol: p.Protocol,
		Number:   int(p.ID),
		Status: domain.PortStatus{
			State:  p.State.State,
			Reason: p.State.Reason,
		},
	}
	if p.Service.Name != "" {
		port.Service = &domain.ServiceInfo{Name: p.Service.Name}
	}
	return port
}
