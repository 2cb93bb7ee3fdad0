package neighbor

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrNeighborTableQuery is returned when the neighbor table could not be read
	ErrNeighborTableQuery = errors.New("could not query neighbor table")
	// ErrSourceUnsupported is returned when a source is not available on this OS
	ErrSourceUnsupported = errors.New("neighbor source not supported on this platform")
)

// Source names accepted by NewSource
const (
	SourceIP      = "ip"
	SourceProc    = "proc"
	SourceNetlink = "netlink"
)

// Source returns the current IPv4 neighbor table, one entry per line
type Source interface {
	Read(ctx context.Context) ([]string, error)
	Name() string
}

// NewSource returns the source registered under name, optionally
// restricted to a single network interface
func NewSource(name, iface string) (Source, error) {
	switch name {
	case "", SourceIP:
		return &IPCommandSource{Binary: "ip", Interface: iface}, nil
	case SourceProc:
		return &ProcSource{Path: DefaultProcPath, Interface: iface}, nil
	case SourceNetlink:
		return &NetlinkSource{Interface: iface}, nil
	default:
		return nil, fmt.Errorf("unknown neighbor source %q (must be one of %s, %s, %s)", name, SourceIP, SourceProc, SourceNetlink)
	}
}

// IPCommandSource reads the neighbor table with `ip -4 neigh show`
type IPCommandSource struct {
	Binary    string
	Interface string
}

// Name of the source
func (s *IPCommandSource) Name() string {
	return SourceIP
}

// Read runs the ip utility and returns its output lines
func (s *IPCommandSource) Read(ctx context.Context) ([]string, error) {
	args := []string{"-4", "neigh", "show"}
	if s.Interface != "" {
		args = append(args, "dev", s.Interface)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s %s: %v: %s", ErrNeighborTableQuery, s.Binary, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNeighborTableQuery, s.Binary, strings.Join(args, " "), err)
	}

	return splitLines(stdout.Bytes())
}

func splitLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
