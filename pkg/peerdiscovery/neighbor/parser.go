package neighbor

import (
	"regexp"
	"strings"

	"github.com/projectdiscovery/landevlist/pkg/types"
)

var macPattern = regexp.MustCompile(`([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}`)

// ParseRecords returns the resolved records of the given neighbor table
// lines in the order they appear
func ParseRecords(lines []string) []types.NeighborRecord {
	var records []types.NeighborRecord
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		mac := macPattern.FindString(line)
		if mac == "" {
			continue
		}

		// the subject address is always the first field of the line
		fields := strings.Fields(line)
		records = append(records, types.NeighborRecord{
			MAC: NormalizeMAC(mac),
			IP:  fields[0],
		})
	}
	return records
}

// Parse builds the candidate set from neighbor table lines.
// When a MAC address appears more than once the last line wins.
func Parse(lines []string) types.CandidateSet {
	return Collect(ParseRecords(lines))
}

// Collect builds the candidate set from records already parsed, the last
// record of a MAC address wins
func Collect(records []types.NeighborRecord) types.CandidateSet {
	candidates := make(types.CandidateSet, len(records))
	for _, record := range records {
		candidates[record.MAC] = record.IP
	}
	return candidates
}

// NormalizeMAC lowercases a MAC address and uses ':' as the only separator
func NormalizeMAC(mac string) string {
	return strings.ReplaceAll(strings.ToLower(mac), "-", ":")
}
