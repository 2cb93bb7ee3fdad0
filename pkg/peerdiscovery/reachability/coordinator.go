package reachability

import (
	"context"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/landevlist/pkg/types"
	syncutil "github.com/projectdiscovery/utils/sync"
)

// DefaultPoolSize is the number of probes running at the same time
const DefaultPoolSize = 5

// Coordinator probes candidate sets through a bounded pool of workers
type Coordinator struct {
	probe    Probe
	poolSize int
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithPoolSize sets the number of concurrent probes (minimum 1)
func WithPoolSize(size int) Option {
	return func(c *Coordinator) {
		c.poolSize = size
	}
}

// NewCoordinator returns a coordinator using probe for every candidate
func NewCoordinator(probe Probe, opts ...Option) *Coordinator {
	c := &Coordinator{probe: probe, poolSize: DefaultPoolSize}
	for _, opt := range opts {
		opt(c)
	}
	if c.poolSize < 1 {
		c.poolSize = 1
	}
	return c
}

// PoolSize returns the number of concurrent probes
func (c *Coordinator) PoolSize() int {
	return c.poolSize
}

// Outcomes probes every candidate exactly once and returns the results in
// snapshot order. It returns only after all probes have completed.
func (c *Coordinator) Outcomes(ctx context.Context, candidates types.CandidateSet) []types.ReachabilityOutcome {
	if len(candidates) == 0 {
		return nil
	}

	snapshot := candidates.Snapshot()
	outcomes := make([]types.ReachabilityOutcome, len(snapshot))

	awg, err := syncutil.New(syncutil.WithSize(c.poolSize))
	if err != nil {
		gologger.Warning().Msgf("could not create probe pool, probing sequentially: %v", err)
		for i, record := range snapshot {
			outcomes[i] = c.run(ctx, i, record)
		}
		return outcomes
	}

	for i, record := range snapshot {
		awg.Add()
		go func(i int, record types.NeighborRecord) {
			defer awg.Done()
			outcomes[i] = c.run(ctx, i, record)
		}(i, record)
	}
	awg.Wait()

	return outcomes
}

// FilterReachable returns a new set with the candidates that answered
// their probe. The input set is never modified.
func (c *Coordinator) FilterReachable(ctx context.Context, candidates types.CandidateSet) types.ActiveDeviceSet {
	active := make(types.ActiveDeviceSet)
	for _, outcome := range c.Outcomes(ctx, candidates) {
		if !outcome.Responded {
			gologger.Debug().Msgf("%s (%s) did not respond", outcome.IP, outcome.MAC)
			continue
		}
		active[outcome.MAC] = outcome.IP
	}
	return active
}

func (c *Coordinator) run(ctx context.Context, index int, record types.NeighborRecord) types.ReachabilityOutcome {
	return types.ReachabilityOutcome{
		Index:     index,
		MAC:       record.MAC,
		IP:        record.IP,
		Responded: c.probe.Probe(ctx, record.IP),
	}
}
