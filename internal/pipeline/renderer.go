package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/catalogwatch/catalogwatch/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Detail output formats
const (
	DetailJSON = "json"
	DetailYAML = "yaml"
)

const barWidth = 30

// Renderer writes reports for files and terminals
type Renderer struct {
	printer *message.Printer
}

// NewRenderer creates a renderer formatting numbers for English readers
func NewRenderer() *Renderer {
	return &Renderer{
		printer: message.NewPrinter(language.English),
	}
}

// RenderJSON writes v as indented JSON to path
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as Markdown to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// Markdown returns the report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder
	p := r.printer

	b.WriteString("# CatalogWatch Overview\n\n")
	p.Fprintf(&b, "- **Source:** %s\n", report.Source)
	if report.RunID != "" {
		p.Fprintf(&b, "- **Run:** %s\n", report.RunID)
	}
	p.Fprintf(&b, "- **Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	p.Fprintf(&b, "- **Total catalogs:** %d\n", report.Total)
	p.Fprintf(&b, "- **Mean score:** %.3f\n\n", report.MeanScore)

	b.WriteString("## Eligibility distribution\n\n")
	b.WriteString("| Window | Catalogs |\n|---|---:|\n")
	for _, wc := range report.Distribution {
		p.Fprintf(&b, "| %s | %d |\n", wc.Window, wc.Count)
	}

	b.WriteString("\n## Top catalogs approaching eligibility\n\n")
	b.WriteString("| Catalog | Artist | Title | Released | Window | Confidence | Score |\n")
	b.WriteString("|---|---|---|---:|---|---:|---:|\n")
	for _, rec := range report.Top {
		p.Fprintf(&b, "| %s | %s | %s | %s | %s | %.2f | %.3f |\n",
			escapeCell(rec.CatalogID), escapeCell(rec.ArtistName), escapeCell(rec.TrackTitle),
			yearText(rec.ReleaseYear), rec.EligibilityWindow, rec.OwnershipConfidence, rec.Score)
	}

	return b.String()
}

// RenderSummary prints the overview to w
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	p := r.printer

	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "  CatalogWatch Overview")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
	p.Fprintf(w, "  Source:          %s\n", report.Source)
	p.Fprintf(w, "  Total catalogs:  %d\n", report.Total)
	p.Fprintf(w, "  Mean score:      %.3f\n", report.MeanScore)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Eligibility distribution")
	for _, wc := range report.Distribution {
		p.Fprintf(w, "    %-18s %6d  %s\n", wc.Window, wc.Count, bar(wc.Count, report.Total))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Top catalogs approaching eligibility")
	for _, rec := range report.Top {
		p.Fprintf(w, "    %-12s %-24s %-6s %-18s %.3f\n",
			rec.CatalogID, truncate(rec.ArtistName, 24), yearText(rec.ReleaseYear), rec.EligibilityWindow, rec.Score)
	}
	fmt.Fprintln(w)
}

// RenderDetail prints the drill-down view of one catalog: the summary in the
// requested format, notes and evidence, and the contribution table
func (r *Renderer) RenderDetail(w io.Writer, d model.CatalogDetail, format string) error {
	switch format {
	case DetailJSON, "":
		data, err := json.MarshalIndent(d.Summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case DetailYAML:
		data, err := yaml.Marshal(d.Summary)
		if err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}
		fmt.Fprint(w, string(data))
	default:
		return fmt.Errorf("unknown format %q (json, yaml)", format)
	}

	p := r.printer
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ownership notes:")
	if d.Notes == "" {
		fmt.Fprintln(w, "  (none)")
	} else {
		fmt.Fprintf(w, "  %s\n", d.Notes)
	}
	fmt.Fprintln(w, "Evidence:")
	for _, ev := range d.Evidence {
		fmt.Fprintf(w, "  - %s\n", ev)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-18s %8s %13s  %s\n", "component", "value", "contribution", "formula")
	for _, c := range d.Components {
		p.Fprintf(w, "  %-18s %8.3f %13s  %s\n", c.Component, c.Value, signed(c.Contribution), c.Formula)
	}
	fmt.Fprintln(w)
	p.Fprintf(w, "  Composite score: %.3f\n", d.Score)

	return nil
}

func bar(count, total int) string {
	if total <= 0 {
		return ""
	}
	n := count * barWidth / total
	if n == 0 && count > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func signed(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func yearText(year *int) string {
	if year == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *year)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
