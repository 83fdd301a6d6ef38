package codec

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"scandiff/internal/reconcile"
	"scandiff/internal/render"
	"scandiff/internal/service"
)

const fingerprintLen = 12

// TextCodec writes the human-readable report: a header naming both scans,
// a summary line, then one block per delta separated by blank lines
type TextCodec struct {
	color bool
}

// NewTextCodec creates a text exporter; color enables styled headers and a summary table
func NewTextCodec(color bool) *TextCodec {
	return &TextCodec{color: color}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() string {
	return "text"
}

// Export writes the report as text
func (c *TextCodec) Export(report *service.Report, w io.Writer) error {
	// render panics on kinds it does not know
	if err := checkKinds(report); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString(scanLine("Old", report.Old))
	b.WriteString(scanLine("New", report.New))

	summary, err := c.summary(report)
	if err != nil {
		return err
	}
	b.WriteString(summary)

	if len(report.Deltas) == 0 {
		b.WriteString("\n" + render.Placeholder + "\n")
	}
	for _, d := range report.Deltas {
		b.WriteString("\n")
		b.WriteString(c.delta(d))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// scanLine renders "Old Scan: <start> (<path>)" plus a short fingerprint when known
func scanLine(label string, info service.SnapshotInfo) string {
	line := fmt.Sprintf("%s Scan: %s (%s)", label, info.StartTimeString(), info.Path)
	if fp := info.Fingerprint; fp != "" {
		if len(fp) > fingerprintLen {
			fp = fp[:fingerprintLen]
		}
		line += " blake2b:" + fp
	}
	return line + "\n"
}

func (c *TextCodec) summary(report *service.Report) (string, error) {
	s := report.Summary
	if !c.color {
		return fmt.Sprintf("Summary: %d gone, %d new, %d changed, %d unchanged\n",
			s.Gone, s.New, s.Changed, s.Unchanged), nil
	}

	data := pterm.TableData{{"Kind", "Hosts", "Shown"}}
	for _, kind := range reconcile.AllKinds {
		shown := "no"
		for _, k := range report.Shown {
			if k == kind {
				shown = "yes"
			}
		}
		data = append(data, []string{render.KindLabel(kind), strconv.Itoa(s.Count(kind)), shown})
	}

	table, err := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false).
		WithData(data).
		Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return "\n" + table + "\n", nil
}

func (c *TextCodec) delta(d reconcile.Delta) string {
	block := render.Delta(d)
	if !c.color {
		return block
	}

	header, body, _ := strings.Cut(block, "\n")
	return kindStyle(d.Kind).Sprint(header) + "\n" + body
}

func kindStyle(kind reconcile.DeltaKind) *pterm.Style {
	switch kind {
	case reconcile.DeltaGone:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case reconcile.DeltaNew:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case reconcile.DeltaChanged:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgCyan)
	}
}
