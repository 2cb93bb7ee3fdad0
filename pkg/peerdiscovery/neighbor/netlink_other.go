//go:build !linux

package neighbor

import (
	"context"
	"fmt"
)

// NetlinkSource lists IPv4 neighbors over rtnetlink (Linux only)
type NetlinkSource struct {
	Interface string
}

// Name of the source
func (s *NetlinkSource) Name() string {
	return SourceNetlink
}

// Read always fails outside Linux
func (s *NetlinkSource) Read(_ context.Context) ([]string, error) {
	return nil, fmt.Errorf("%w: %s", ErrSourceUnsupported, SourceNetlink)
}
