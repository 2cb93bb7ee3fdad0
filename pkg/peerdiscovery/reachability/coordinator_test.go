package reachability

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/projectdiscovery/landevlist/pkg/types"
	"github.com/stretchr/testify/require"
)

// recordingProbe counts calls per address and tracks peak concurrency
type recordingProbe struct {
	mu       sync.Mutex
	calls    map[string]int
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
	answer   func(ip string) bool
}

func newRecordingProbe(answer func(ip string) bool) *recordingProbe {
	return &recordingProbe{calls: make(map[string]int), answer: answer}
}

func (p *recordingProbe) Probe(_ context.Context, ip string) bool {
	current := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		peak := p.peak.Load()
		if current <= peak || p.peak.CompareAndSwap(peak, current) {
			break
		}
	}

	p.mu.Lock()
	p.calls[ip]++
	p.mu.Unlock()

	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return p.answer(ip)
}

func (p *recordingProbe) totalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, n := range p.calls {
		total += n
	}
	return total
}

func evenLastOctet(ip string) bool {
	parts := strings.Split(ip, ".")
	last, err := strconv.Atoi(parts[len(parts)-1])
	return err == nil && last%2 == 0
}

func syntheticCandidates(n int) types.CandidateSet {
	candidates := make(types.CandidateSet, n)
	for i := 1; i <= n; i++ {
		candidates[fmt.Sprintf("02:00:00:00:%02x:%02x", i/256, i%256)] = fmt.Sprintf("10.1.%d.%d", i/256, i%256)
	}
	return candidates
}

func TestFilterReachableEmpty(t *testing.T) {
	probe := newRecordingProbe(func(string) bool { return true })
	coordinator := NewCoordinator(probe)

	active := coordinator.FilterReachable(context.Background(), types.CandidateSet{})
	require.NotNil(t, active)
	require.Empty(t, active)
	require.Zero(t, probe.totalCalls())

	active = coordinator.FilterReachable(context.Background(), nil)
	require.Empty(t, active)
	require.Zero(t, probe.totalCalls())
}

func TestFilterReachableScenario(t *testing.T) {
	candidates := types.CandidateSet{
		"aa:bb:cc:dd:ee:ff": "192.168.1.10",
		"11:22:33:44:55:66": "192.168.1.20",
	}
	probe := ProbeFunc(func(_ context.Context, ip string) bool {
		return ip == "192.168.1.10"
	})

	active := NewCoordinator(probe).FilterReachable(context.Background(), candidates)
	require.Equal(t, types.ActiveDeviceSet{"aa:bb:cc:dd:ee:ff": "192.168.1.10"}, active)

	// input is left untouched
	require.Len(t, candidates, 2)
}

func TestFilterReachablePairing(t *testing.T) {
	for _, poolSize := range []int{1, 3, DefaultPoolSize, 64} {
		t.Run(fmt.Sprintf("pool-%d", poolSize), func(t *testing.T) {
			candidates := syntheticCandidates(40)
			probe := newRecordingProbe(evenLastOctet)
			probe.delay = time.Millisecond

			active := NewCoordinator(probe, WithPoolSize(poolSize)).FilterReachable(context.Background(), candidates)

			expected := make(types.ActiveDeviceSet)
			for mac, ip := range candidates {
				if evenLastOctet(ip) {
					expected[mac] = ip
				}
			}
			require.Equal(t, expected, active)
			require.Len(t, active, 20)
		})
	}
}

func TestOutcomesProbesEachCandidateOnce(t *testing.T) {
	candidates := syntheticCandidates(25)
	probe := newRecordingProbe(evenLastOctet)
	probe.delay = 2 * time.Millisecond

	outcomes := NewCoordinator(probe, WithPoolSize(4)).Outcomes(context.Background(), candidates)
	require.Len(t, outcomes, len(candidates))
	require.Equal(t, len(candidates), probe.totalCalls())
	for _, ip := range candidates {
		require.Equal(t, 1, probe.calls[ip], "probe count for %s", ip)
	}

	for i, outcome := range outcomes {
		require.Equal(t, i, outcome.Index)
		require.Equal(t, candidates[outcome.MAC], outcome.IP)
		require.Equal(t, evenLastOctet(outcome.IP), outcome.Responded)
	}

	require.LessOrEqual(t, probe.peak.Load(), int32(4))
}

func TestOutcomesRespectPoolSize(t *testing.T) {
	probe := newRecordingProbe(func(string) bool { return false })
	probe.delay = 5 * time.Millisecond

	coordinator := NewCoordinator(probe)
	require.Equal(t, DefaultPoolSize, coordinator.PoolSize())

	active := coordinator.FilterReachable(context.Background(), syntheticCandidates(30))
	require.Empty(t, active)
	require.LessOrEqual(t, probe.peak.Load(), int32(DefaultPoolSize))
	require.Equal(t, 30, probe.totalCalls())
}

func TestWithPoolSizeClamps(t *testing.T) {
	probe := ProbeFunc(func(context.Context, string) bool { return true })
	require.Equal(t, 1, NewCoordinator(probe, WithPoolSize(0)).PoolSize())
	require.Equal(t, 1, NewCoordinator(probe, WithPoolSize(-3)).PoolSize())
	require.Equal(t, 8, NewCoordinator(probe, WithPoolSize(8)).PoolSize())
}
