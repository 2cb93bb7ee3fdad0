package types

import (
	"bytes"
	"net"
	"sort"
)

// NeighborRecord is a single resolved entry of the neighbor table
type NeighborRecord struct {
	MAC string
	IP  string
}

// CandidateSet maps a normalized MAC address to the last IPv4 address
// seen for it in the neighbor table
type CandidateSet map[string]string

// ActiveDeviceSet has the same shape as CandidateSet but only holds
// devices that answered a reachability probe
type ActiveDeviceSet map[string]string

// ReachabilityOutcome pairs a candidate with the result of its single probe
type ReachabilityOutcome struct {
	Index     int
	MAC       string
	IP        string
	Responded bool
}

// Device is a row of the final report
type Device struct {
	MAC string `json:"mac"`
	IP  string `json:"ip"`
}

// Snapshot returns the candidates as a slice ordered by MAC address
func (c CandidateSet) Snapshot() []NeighborRecord {
	records := make([]NeighborRecord, 0, len(c))
	for mac, ip := range c {
		records = append(records, NeighborRecord{MAC: mac, IP: ip})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].MAC < records[j].MAC
	})
	return records
}

// Devices returns the active devices ordered by IPv4 address.
// Entries whose address does not parse sort last, by MAC.
func (a ActiveDeviceSet) Devices() []Device {
	devices := make([]Device, 0, len(a))
	for mac, ip := range a {
		devices = append(devices, Device{MAC: mac, IP: ip})
	}
	sort.Slice(devices, func(i, j int) bool {
		ipi := net.ParseIP(devices[i].IP).To4()
		ipj := net.ParseIP(devices[j].IP).To4()
		switch {
		case ipi == nil && ipj == nil:
			return devices[i].MAC < devices[j].MAC
		case ipi == nil:
			return false
		case ipj == nil:
			return true
		}
		if cmp := bytes.Compare(ipi, ipj); cmp != 0 {
			return cmp < 0
		}
		return devices[i].MAC < devices[j].MAC
	})
	return devices
}
