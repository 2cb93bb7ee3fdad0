package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/landevlist/pkg/output"
	"github.com/projectdiscovery/landevlist/pkg/peerdiscovery/neighbor"
	"github.com/projectdiscovery/landevlist/pkg/peerdiscovery/reachability"
)

// Runner contains the internal logic of the program
type Runner struct {
	options     *Options
	source      neighbor.Source
	coordinator *reachability.Coordinator
	writer      *output.Writer
	stdout      io.Writer
	lookPath    func(string) (string, error)
}

// NewRunner instance
func NewRunner(options *Options) (*Runner, error) {
	options.normalize()

	source, err := neighbor.NewSource(options.Source, options.Interface)
	if err != nil {
		return nil, err
	}
	probe, err := reachability.NewProbe(options.Probe, options.Timeout)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		options:     options,
		source:      source,
		coordinator: reachability.NewCoordinator(probe, reachability.WithPoolSize(options.PoolSize)),
		stdout:      os.Stdout,
		lookPath:    exec.LookPath,
	}
	r.writer = r.newWriter()
	return r, nil
}

func (r *Runner) newWriter() *output.Writer {
	return output.New(r.stdout,
		output.WithTableWidth(r.options.TableWidth),
		output.WithJSON(r.options.JSON),
	)
}

// Run checks the required programs, reads the neighbor table, probes every
// candidate and prints the devices that answered
func (r *Runner) Run(ctx context.Context) error {
	required := requiredPrograms(r.options)
	if err := checkDependencies(required, r.lookPath); err != nil {
		var missingErr *MissingDependencyError
		if errors.As(err, &missingErr) {
			ShowMissingDependency(r.stdout, required, missingErr.Programs)
		}
		return err
	}

	gologger.Verbose().Msgf("reading neighbor table using %s", r.source.Name())
	lines, err := r.source.Read(ctx)
	if err != nil {
		return fmt.Errorf("could not read neighbor table: %w", err)
	}

	records := neighbor.ParseRecords(lines)
	for _, record := range records {
		gologger.Debug().Msgf("neighbor %s (%s)", record.IP, record.MAC)
	}
	candidates := neighbor.Collect(records)
	gologger.Verbose().Msgf("found %d candidates in %d neighbor entries", len(candidates), len(lines))

	if len(candidates) > 0 {
		gologger.Verbose().Msgf("probing %d candidates with %s (pool size %d, timeout %s)",
			len(candidates), r.options.Probe, r.coordinator.PoolSize(), r.options.Timeout)
	}
	active := r.coordinator.FilterReachable(ctx, candidates)
	gologger.Verbose().Msgf("%d of %d candidates responded", len(active), len(candidates))

	return r.writer.Write(active)
}

// ExitCode maps the result of Run to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
