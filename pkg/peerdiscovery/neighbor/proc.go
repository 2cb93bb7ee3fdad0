package neighbor

import (
	"context"
	"fmt"
	"os"
	"strings"

	osutils "github.com/projectdiscovery/utils/os"
)

// DefaultProcPath is the kernel ARP table exposed by procfs
const DefaultProcPath = "/proc/net/arp"

const incompleteMAC = "00:00:00:00:00:00"

// ProcSource reads the neighbor table from /proc/net/arp and rewrites
// each row in the `ip neigh` line format
type ProcSource struct {
	Path      string
	Interface string
}

// Name of the source
func (s *ProcSource) Name() string {
	return SourceProc
}

// Read returns the ARP table rows as neighbor lines
func (s *ProcSource) Read(_ context.Context) ([]string, error) {
	if !osutils.IsLinux() && s.Path == DefaultProcPath {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnsupported, SourceProc)
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNeighborTableQuery, err)
	}

	rows, err := splitLines(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNeighborTableQuery, err)
	}

	var lines []string
	for i, row := range rows {
		// Format: IP address HW type Flags HW address Mask Device
		if i == 0 && strings.HasPrefix(row, "IP address") {
			continue
		}
		fields := strings.Fields(row)
		if len(fields) < 6 {
			continue
		}

		ip, flags, mac, device := fields[0], fields[2], fields[3], fields[5]
		if s.Interface != "" && device != s.Interface {
			continue
		}

		if mac == incompleteMAC || flags == "0x0" {
			lines = append(lines, fmt.Sprintf("%s dev %s INCOMPLETE", ip, device))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s dev %s lladdr %s %s", ip, device, mac, procState(flags)))
	}
	return lines, nil
}

// procState maps the ATF_* flags of an ARP row to an ip-neigh style state
func procState(flags string) string {
	switch flags {
	case "0x6", "0x4":
		return "PERMANENT"
	default:
		return "REACHABLE"
	}
}
