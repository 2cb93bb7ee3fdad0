package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/landevlist/pkg/types"
)

// NoDevicesMessage is printed when no device answered
const NoDevicesMessage = "No active devices on local network."

const (
	// DefaultTableWidth is the total width of the rendered table
	DefaultTableWidth = 43

	macColumnWidth = 19
	// borders and one space of padding on each side of both cells
	tableChrome = 7
)

// Writer renders the active device set
type Writer struct {
	out        io.Writer
	tableWidth int
	jsonLines  bool
}

// Option configures a Writer
type Option func(*Writer)

// WithTableWidth sets the total table width. Widths narrower than the
// default are raised to it.
func WithTableWidth(width int) Option {
	return func(w *Writer) {
		w.tableWidth = width
	}
}

// WithJSON switches the output to one JSON object per device
func WithJSON(enabled bool) Option {
	return func(w *Writer) {
		w.jsonLines = enabled
	}
}

// New returns a writer printing to out
func New(out io.Writer, opts ...Option) *Writer {
	w := &Writer{out: out, tableWidth: DefaultTableWidth}
	for _, opt := range opts {
		opt(w)
	}
	if w.tableWidth < DefaultTableWidth {
		w.tableWidth = DefaultTableWidth
	}
	return w
}

// Write prints the devices sorted by IPv4 address
func (w *Writer) Write(devices types.ActiveDeviceSet) error {
	if w.jsonLines {
		return w.writeJSON(devices)
	}
	if len(devices) == 0 {
		_, err := fmt.Fprintln(w.out, NoDevicesMessage)
		return err
	}

	table := tablewriter.NewWriter(w.out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(true)
	table.SetRowLine(true)
	table.SetCenterSeparator("+")
	table.SetRowSeparator("+")
	table.SetColumnSeparator("|")
	table.SetColMinWidth(0, macColumnWidth)
	table.SetColMinWidth(1, w.tableWidth-tableChrome-macColumnWidth)
	table.SetHeader([]string{"Device MAC", "IPv4 Address"})

	for _, device := range devices.Devices() {
		table.Append([]string{device.MAC, device.IP})
	}
	table.Render()
	return nil
}

func (w *Writer) writeJSON(devices types.ActiveDeviceSet) error {
	if len(devices) == 0 {
		// stdout stays valid json lines
		gologger.Info().Msg(NoDevicesMessage)
		return nil
	}
	encoder := json.NewEncoder(w.out)
	for _, device := range devices.Devices() {
		if err := encoder.Encode(device); err != nil {
			return fmt.Errorf("could not encode device %s: %w", device.MAC, err)
		}
	}
	return nil
}
