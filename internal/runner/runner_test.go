package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/projectdiscovery/landevlist/pkg/output"
	"github.com/projectdiscovery/landevlist/pkg/peerdiscovery/neighbor"
	"github.com/projectdiscovery/landevlist/pkg/peerdiscovery/reachability"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	lines []string
	err   error
	reads int
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Read(context.Context) ([]string, error) {
	s.reads++
	return s.lines, s.err
}

func allInstalled(program string) (string, error) {
	return "/usr/bin/" + program, nil
}

func newTestRunner(options *Options, source neighbor.Source, probe reachability.Probe) (*Runner, *bytes.Buffer) {
	options.normalize()
	stdout := &bytes.Buffer{}
	r := &Runner{
		options:     options,
		source:      source,
		coordinator: reachability.NewCoordinator(probe, reachability.WithPoolSize(options.PoolSize)),
		stdout:      stdout,
		lookPath:    allInstalled,
	}
	r.writer = r.newWriter()
	return r, stdout
}

func TestRunReportsReachableDevices(t *testing.T) {
	source := &fakeSource{lines: []string{
		"192.168.1.10 dev eth0 lladdr aa:bb:cc:dd:ee:ff REACHABLE",
		"192.168.1.20 dev eth0 lladdr 11:22:33:44:55:66 STALE",
		"192.168.1.11 dev eth0 FAILED",
	}}
	probe := reachability.ProbeFunc(func(_ context.Context, ip string) bool {
		return ip == "192.168.1.10"
	})

	r, stdout := newTestRunner(DefaultOptions(), source, probe)
	require.NoError(t, r.Run(context.Background()))

	require.Contains(t, stdout.String(), "aa:bb:cc:dd:ee:ff")
	require.Contains(t, stdout.String(), "192.168.1.10")
	require.NotContains(t, stdout.String(), "11:22:33:44:55:66")
	require.Equal(t, 1, source.reads)
}

func TestRunEmptyNeighborTable(t *testing.T) {
	probed := false
	probe := reachability.ProbeFunc(func(context.Context, string) bool {
		probed = true
		return true
	})

	r, stdout := newTestRunner(DefaultOptions(), &fakeSource{}, probe)
	err := r.Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, ExitCode(err))
	require.Equal(t, output.NoDevicesMessage+"\n", stdout.String())
	require.False(t, probed)
}

func TestRunMissingDependency(t *testing.T) {
	source := &fakeSource{}
	r, stdout := newTestRunner(DefaultOptions(), source, reachability.ProbeFunc(func(context.Context, string) bool { return true }))
	r.lookPath = func(program string) (string, error) {
		if program == "ping" {
			return "", exec.ErrNotFound
		}
		return allInstalled(program)
	}

	err := r.Run(context.Background())
	require.ErrorIs(t, err, ErrMissingDependency)
	require.Equal(t, 1, ExitCode(err))
	require.Zero(t, source.reads)

	var missingErr *MissingDependencyError
	require.True(t, errors.As(err, &missingErr))
	require.Equal(t, []string{"ping"}, missingErr.Programs)
	require.Contains(t, stdout.String(), "A required program was not found")
	require.Contains(t, stdout.String(), "iputils-ping")
}

func TestRunNeighborTableFailure(t *testing.T) {
	source := &fakeSource{err: neighbor.ErrNeighborTableQuery}
	r, stdout := newTestRunner(DefaultOptions(), source, reachability.ProbeFunc(func(context.Context, string) bool { return true }))

	err := r.Run(context.Background())
	require.ErrorIs(t, err, neighbor.ErrNeighborTableQuery)
	require.Equal(t, 1, ExitCode(err))
	require.Empty(t, stdout.String())
}

func TestRunJSON(t *testing.T) {
	options := DefaultOptions()
	options.JSON = true
	source := &fakeSource{lines: []string{"10.0.0.2 dev eth0 lladdr 02:00:00:00:00:02 REACHABLE"}}

	r, stdout := newTestRunner(options, source, reachability.ProbeFunc(func(context.Context, string) bool { return true }))
	require.NoError(t, r.Run(context.Background()))
	require.Equal(t, `{"mac":"02:00:00:00:00:02","ip":"10.0.0.2"}`+"\n", stdout.String())
}

func TestRequiredPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
		probe  string
		want   []string
	}{
		{name: "defaults", want: []string{"ip", "ping"}},
		{name: "ip and ping", source: neighbor.SourceIP, probe: reachability.ProbePing, want: []string{"ip", "ping"}},
		{name: "proc and ping", source: neighbor.SourceProc, probe: reachability.ProbePing, want: []string{"ping"}},
		{name: "netlink and icmp", source: neighbor.SourceNetlink, probe: reachability.ProbeICMP, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, requiredPrograms(&Options{Source: tt.source, Probe: tt.probe}))
		})
	}
}

func TestCheckDependenciesAggregates(t *testing.T) {
	err := checkDependencies([]string{"ip", "ping"}, func(string) (string, error) {
		return "", exec.ErrNotFound
	})
	require.ErrorIs(t, err, ErrMissingDependency)
	require.ErrorIs(t, err, exec.ErrNotFound)

	var missingErr *MissingDependencyError
	require.True(t, errors.As(err, &missingErr))
	require.Equal(t, []string{"ip", "ping"}, missingErr.Programs)

	require.NoError(t, checkDependencies([]string{"ip", "ping"}, allInstalled))
	require.NoError(t, checkDependencies(nil, nil))
}

func TestNewRunner(t *testing.T) {
	options := DefaultOptions()
	options.Source = " PROC "
	options.Probe = "ICMP"
	options.PoolSize = 0

	r, err := NewRunner(options)
	require.NoError(t, err)
	require.Equal(t, neighbor.SourceProc, r.source.Name())
	require.Equal(t, 1, r.coordinator.PoolSize())

	options = DefaultOptions()
	options.Source = "arp"
	_, err = NewRunner(options)
	require.Error(t, err)

	options = DefaultOptions()
	options.Probe = "tcp"
	_, err = NewRunner(options)
	require.Error(t, err)
}

func TestIsHelpRequest(t *testing.T) {
	for _, arg := range []string{"help", "-help", "--help", "/help", "-h"} {
		require.True(t, IsHelpRequest([]string{arg}), arg)
	}
	require.False(t, IsHelpRequest(nil))
	require.False(t, IsHelpRequest([]string{"-verbose"}))
	require.False(t, IsHelpRequest([]string{"-v", "help"}))

	var buf bytes.Buffer
	ShowHelp(&buf)
	require.Contains(t, buf.String(), "Usage: landevlist")
}

func TestRunMissingDependencyListsOnlyRequiredPrograms(t *testing.T) {
	options := DefaultOptions()
	options.Source = neighbor.SourceProc
	source := &fakeSource{}
	r, stdout := newTestRunner(options, source, reachability.ProbeFunc(func(context.Context, string) bool { return true }))
	r.lookPath = func(string) (string, error) {
		return "", exec.ErrNotFound
	}

	err := r.Run(context.Background())
	require.ErrorIs(t, err, ErrMissingDependency)
	require.Zero(t, source.reads)
	require.Contains(t, stdout.String(), "Required programs are: ping\n")
	require.NotContains(t, stdout.String(), "iproute2")
	require.Contains(t, stdout.String(), "iputils-ping")
}
