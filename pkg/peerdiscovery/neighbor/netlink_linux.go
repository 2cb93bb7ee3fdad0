//go:build linux

package neighbor

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/vishvananda/netlink"
)

// NetlinkSource lists IPv4 neighbors over rtnetlink
type NetlinkSource struct {
	Interface string
}

// Name of the source
func (s *NetlinkSource) Name() string {
	return SourceNetlink
}

// Read dumps the kernel neighbor table and renders each entry as an
// `ip neigh` line
func (s *NetlinkSource) Read(_ context.Context) ([]string, error) {
	linkIndex := 0
	if s.Interface != "" {
		link, err := netlink.LinkByName(s.Interface)
		if err != nil {
			return nil, fmt.Errorf("%w: could not find interface %s: %v", ErrNeighborTableQuery, s.Interface, err)
		}
		linkIndex = link.Attrs().Index
	}

	neighs, err := netlink.NeighList(linkIndex, netlink.FAMILY_V4)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNeighborTableQuery, err)
	}

	names := make(map[int]string)
	linkName := func(index int) string {
		if name, ok := names[index]; ok {
			return name
		}
		name := fmt.Sprintf("if%d", index)
		if link, err := netlink.LinkByIndex(index); err == nil {
			name = link.Attrs().Name
		}
		names[index] = name
		return name
	}

	lines := make([]string, 0, len(neighs))
	for _, neigh := range neighs {
		if line, ok := neighLine(neigh, linkName(neigh.LinkIndex)); ok {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// neighLine renders a neighbor as an `ip neigh` line. Like iproute2 it
// hides NOARP entries, and an all-zero hardware address is left out.
func neighLine(neigh netlink.Neigh, dev string) (string, bool) {
	if neigh.IP == nil || neigh.IP.To4() == nil {
		return "", false
	}
	if neigh.State&netlink.NUD_NOARP != 0 {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString(neigh.IP.String())
	sb.WriteString(" dev ")
	sb.WriteString(dev)
	if !isZeroMAC(neigh.HardwareAddr) {
		sb.WriteString(" lladdr ")
		sb.WriteString(neigh.HardwareAddr.String())
	}
	sb.WriteString(" ")
	sb.WriteString(neighState(neigh.State))
	return sb.String(), true
}

func isZeroMAC(mac net.HardwareAddr) bool {
	for _, b := range mac {
		if b != 0 {
			return false
		}
	}
	return true
}

func neighState(state int) string {
	switch {
	case state&netlink.NUD_PERMANENT != 0:
		return "PERMANENT"
	case state&netlink.NUD_REACHABLE != 0:
		return "REACHABLE"
	case state&netlink.NUD_STALE != 0:
		return "STALE"
	case state&netlink.NUD_DELAY != 0:
		return "DELAY"
	case state&netlink.NUD_PROBE != 0:
		return "PROBE"
	case state&netlink.NUD_FAILED != 0:
		return "FAILED"
	case state&netlink.NUD_INCOMPLETE != 0:
		return "INCOMPLETE"
	default:
		return "NONE"
	}
}
