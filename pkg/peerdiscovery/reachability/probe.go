package reachability

import (
	"context"
	"fmt"
	"math"
	"net"
	"os"
	"os/exec"
	"strconv"
	"time"

	osutils "github.com/projectdiscovery/utils/os"
)

// DefaultTimeout is how long a single probe waits for a reply
const DefaultTimeout = time.Second

// Probe methods accepted by NewProbe
const (
	ProbePing = "ping"
	ProbeICMP = "icmp"
)

// Probe checks whether an IPv4 address currently responds.
// Implementations must be safe for concurrent use.
type Probe interface {
	Probe(ctx context.Context, ip string) bool
}

// ProbeFunc adapts a function to the Probe interface
type ProbeFunc func(ctx context.Context, ip string) bool

// Probe calls f(ctx, ip)
func (f ProbeFunc) Probe(ctx context.Context, ip string) bool {
	return f(ctx, ip)
}

// NewProbe returns the probe registered under method
func NewProbe(method string, timeout time.Duration) (Probe, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	switch method {
	case "", ProbePing:
		return &PingCommandProbe{Binary: "ping", Timeout: timeout}, nil
	case ProbeICMP:
		return &ICMPProbe{Timeout: timeout, Privileged: os.Geteuid() == 0}, nil
	default:
		return nil, fmt.Errorf("unknown probe method %q (must be one of %s, %s)", method, ProbePing, ProbeICMP)
	}
}

// PingCommandProbe sends a single echo request with the system ping utility
type PingCommandProbe struct {
	Binary  string
	Timeout time.Duration
}

// Probe runs `ping -c 1 -W <timeout> ip` and reports whether it exited cleanly
func (p *PingCommandProbe) Probe(ctx context.Context, ip string) bool {
	if !isIPv4(ip) {
		return false
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	seconds := int(math.Ceil(timeout.Seconds()))
	if seconds < 1 {
		seconds = 1
	}

	// ping bounds itself, the grace period only covers a hung process
	ctx, cancel := context.WithTimeout(ctx, timeout+time.Second)
	defer cancel()

	waitFlag := "-W"
	if osutils.IsOSX() {
		waitFlag = "-t"
	}
	cmd := exec.CommandContext(ctx, p.Binary, "-c", "1", waitFlag, strconv.Itoa(seconds), ip)
	return cmd.Run() == nil
}

func isIPv4(ip string) bool {
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.To4() != nil
}
