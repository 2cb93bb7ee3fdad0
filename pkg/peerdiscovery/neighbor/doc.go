// Package neighbor reads the local IPv4 neighbor (ARP) table and turns it
// into a set of candidate devices.
//
// A Source returns the raw table as lines in the format printed by
// `ip -4 neigh show`:
//
//	192.168.1.10 dev eth0 lladdr aa:bb:cc:dd:ee:ff REACHABLE
//	192.168.1.11 dev eth0 FAILED
//
// Parse extracts the link-layer address from every line that has one and
// uses the first field of the line as its IPv4 address. Lines without a
// resolved address (headers, FAILED or INCOMPLETE entries) are skipped.
//
// Three sources are available:
//   - IPCommandSource: runs the iproute2 `ip` utility (default)
//   - ProcSource: reads /proc/net/arp (Linux)
//   - NetlinkSource: queries the kernel over rtnetlink (Linux)
package neighbor
