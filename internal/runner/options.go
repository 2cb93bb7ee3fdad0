package runner

import (
	"strconv"
	"strings"
	"time"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/landevlist/pkg/output"
	"github.com/projectdiscovery/landevlist/pkg/peerdiscovery/neighbor"
	"github.com/projectdiscovery/landevlist/pkg/peerdiscovery/reachability"
	envutil "github.com/projectdiscovery/utils/env"
)

var (
	SourceEnv    = envutil.GetEnvOrDefault("LANDEV_SOURCE", neighbor.SourceIP)
	ProbeEnv     = envutil.GetEnvOrDefault("LANDEV_PROBE", reachability.ProbePing)
	PoolSizeEnv  = envutil.GetEnvOrDefault("LANDEV_POOL_SIZE", strconv.Itoa(reachability.DefaultPoolSize))
	InterfaceEnv = envutil.GetEnvOrDefault("LANDEV_INTERFACE", "")
	VerboseEnv   = envutil.GetEnvOrDefault("LANDEV_VERBOSE", "")
)

// Options contains the configuration options for a scan
type Options struct {
	Source    string        // neighbor table source (ip, proc, netlink)
	Interface string        // restrict the neighbor table to one interface
	Probe     string        // reachability probe method (ping, icmp)
	Timeout   time.Duration // per probe timeout
	PoolSize  int           // number of probes running in parallel

	JSON       bool
	TableWidth int

	Verbose bool
	Silent  bool
	NoColor bool
	Version bool
}

// DefaultOptions returns the options used when no flag is given
func DefaultOptions() *Options {
	return &Options{
		Source:     neighbor.SourceIP,
		Probe:      reachability.ProbePing,
		Timeout:    reachability.DefaultTimeout,
		PoolSize:   reachability.DefaultPoolSize,
		TableWidth: output.DefaultTableWidth,
	}
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := DefaultOptions()

	defaultPoolSize := reachability.DefaultPoolSize
	if val, err := strconv.Atoi(PoolSizeEnv); err == nil && val > 0 {
		defaultPoolSize = val
	}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`landevlist lists the devices active on the local network (LAN) with their MAC and IPv4 addresses`)

	flagSet.CreateGroup("discovery", "Discovery",
		flagSet.StringVarP(&options.Source, "source", "s", SourceEnv, "neighbor table source (ip, proc, netlink)"),
		flagSet.StringVarP(&options.Interface, "interface", "i", InterfaceEnv, "only list neighbors of the given network interface"),
		flagSet.StringVarP(&options.Probe, "probe", "p", ProbeEnv, "reachability probe method (ping, icmp)"),
		flagSet.DurationVarP(&options.Timeout, "timeout", "t", reachability.DefaultTimeout, "time to wait for each probe reply"),
		flagSet.IntVarP(&options.PoolSize, "pool-size", "c", defaultPoolSize, "number of probes to run in parallel"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&options.JSON, "json", "j", false, "write devices as json lines"),
		flagSet.IntVarP(&options.TableWidth, "table-width", "tw", output.DefaultTableWidth, "total width of the device table"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only results in output"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	if (VerboseEnv == "true" || VerboseEnv == "1") && !options.Verbose {
		options.Verbose = true
	}

	options.normalize()
	options.configureOutput()

	return options
}

// normalize lowercases method names and clamps numeric options
func (options *Options) normalize() {
	options.Source = strings.ToLower(strings.TrimSpace(options.Source))
	options.Probe = strings.ToLower(strings.TrimSpace(options.Probe))
	options.Interface = strings.TrimSpace(options.Interface)
	if options.PoolSize < 1 {
		options.PoolSize = 1
	}
	if options.Timeout <= 0 {
		options.Timeout = reachability.DefaultTimeout
	}
	if options.TableWidth < output.DefaultTableWidth {
		options.TableWidth = output.DefaultTableWidth
	}
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}
