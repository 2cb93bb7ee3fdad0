// Package reachability verifies which neighbor table candidates are still
// alive on the local network.
//
// A Probe sends exactly one reachability check to an IPv4 address and
// reports whether it was answered within its timeout. Probe failures of any
// kind (timeout, negative reply, execution error) are reported as false.
//
// The Coordinator fans a candidate set out to a bounded pool of concurrent
// probes (5 by default), waits for the whole batch to finish and returns a
// new set holding only the candidates that responded. Each probe result is
// stored at the index of its candidate so results can never be attributed
// to the wrong MAC address.
//
// Example usage:
//
//	probe, _ := reachability.NewProbe(reachability.ProbePing, time.Second)
//	coordinator := reachability.NewCoordinator(probe, reachability.WithPoolSize(5))
//	active := coordinator.FilterReachable(ctx, candidates)
//
// Privilege Requirements:
// - ProbeICMP opens a raw ICMP socket when running as root and falls back
// to an unprivileged datagram ICMP socket otherwise (Linux requires
// net.ipv4.ping_group_range to include the caller's group)
// - ProbePing relies on the system ping utility and needs no privileges
package reachability
