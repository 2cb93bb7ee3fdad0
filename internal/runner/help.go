package runner

import (
	"fmt"
	"io"
	"strings"
)

// programPackages lists the distro packages shipping each external program
var programPackages = map[string]string{
	"ping": "* iputils-ping (on Debian/Ubuntu), or\n  iputils (on Arch/RHEL/Fedora)\n",
	"ip":   "* iproute2 (on Debian/Ubuntu/Arch), or\n  iproute (on RHEL/Fedora)\n",
}

// Version of landevlist, set at build time via ldflags
var Version = "v0.1.0"

var helpArgs = map[string]struct{}{
	"help":   {},
	"-help":  {},
	"--help": {},
	"/help":  {},
	"-h":     {},
}

// IsHelpRequest reports whether the first argument asks for usage
func IsHelpRequest(args []string) bool {
	if len(args) == 0 {
		return false
	}
	_, ok := helpArgs[args[0]]
	return ok
}

// ShowHelp prints the usage text
func ShowHelp(w io.Writer) {
	fmt.Fprint(w, `Usage: landevlist [flags]
Lists devices connected to the local network (LAN) with their MAC and IPv4 addresses.

Output is formatted in a tabular structure for readability.
Only devices with an active connection will be displayed.

DISCOVERY:
   -s, -source string       neighbor table source (ip, proc, netlink) (default "ip")
   -i, -interface string    only list neighbors of the given network interface
   -p, -probe string        reachability probe method (ping, icmp) (default "ping")
   -t, -timeout value       time to wait for each probe reply (default 1s)
   -c, -pool-size int       number of probes to run in parallel (default 5)

OUTPUT:
   -j, -json                write devices as json lines
   -tw, -table-width int    total width of the device table (default 43)
   -nc, -no-color           disable output content coloring (ANSI escape codes)
   -silent                  show only results in output

DEBUG:
   -v, -verbose             show verbose output
   -version                 show version of the project
`)
}

// ShowMissingDependency prints which programs are needed and where to get them
func ShowMissingDependency(w io.Writer, required, missing []string) {
	fmt.Fprintln(w, "landevlist: A required program was not found on your system.")
	if len(missing) > 0 {
		fmt.Fprintf(w, "Missing programs: %v\n", missing)
	}
	fmt.Fprintf(w, "Required programs are: %s\n", strings.Join(required, ", "))
	fmt.Fprintln(w, "Make sure these packages are installed:")
	for _, program := range required {
		if packages, ok := programPackages[program]; ok {
			fmt.Fprint(w, packages)
		}
	}
	fmt.Fprintln(w, "Please note that package name may vary based on your distro repository upstream.")
	fmt.Fprintln(w, "Alternatively use -source proc or -source netlink and -probe icmp, which need no external program.")
}
