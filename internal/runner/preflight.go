package runner

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-multierror"
	"github.com/projectdiscovery/landevlist/pkg/peerdiscovery/neighbor"
	"github.com/projectdiscovery/landevlist/pkg/peerdiscovery/reachability"
)

// ErrMissingDependency is returned when an external program needed by the
// selected source or probe is not installed
var ErrMissingDependency = errors.New("a required program was not found on your system")

// MissingDependencyError lists the programs that could not be found
type MissingDependencyError struct {
	Programs []string
	err      error
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingDependency, e.err)
}

func (e *MissingDependencyError) Unwrap() []error {
	return []error{ErrMissingDependency, e.err}
}

// requiredPrograms returns the external programs used by the options
func requiredPrograms(options *Options) []string {
	var programs []string
	if options.Source == "" || options.Source == neighbor.SourceIP {
		programs = append(programs, "ip")
	}
	if options.Probe == "" || options.Probe == reachability.ProbePing {
		programs = append(programs, "ping")
	}
	return programs
}

// checkDependencies looks every program up and reports all missing ones at once
func checkDependencies(programs []string, lookPath func(string) (string, error)) error {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var (
		result  *multierror.Error
		missing []string
	)
	for _, program := range programs {
		if _, err := lookPath(program); err != nil {
			missing = append(missing, program)
			result = multierror.Append(result, fmt.Errorf("%s: %w", program, err))
		}
	}
	if result == nil {
		return nil
	}
	return &MissingDependencyError{Programs: missing, err: result.ErrorOrNil()}
}
