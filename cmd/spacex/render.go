package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Adda-Baaj/launch-harvester/pkg/spacex"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type outputFormat string

const (
	outputAuto outputFormat = "auto"
	outputJSON outputFormat = "json"
	outputText outputFormat = "text"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(12)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5733"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func parseOutputFormat(raw string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "", outputAuto:
		return outputAuto, nil
	case outputJSON, outputText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want auto, json or text)", raw)
	}
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// printer writes API records either as indented JSON or as styled text.
type printer struct {
	w    io.Writer
	json bool
}

func newPrinterFor(w io.Writer, format outputFormat, tty bool) *printer {
	asJSON := format == outputJSON || (format == outputAuto && !tty)
	return &printer{w: w, json: asJSON}
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) nextLaunch(l *spacex.Launch) error {
	if p.json {
		return p.encode(l)
	}
	if l == nil {
		_, err := fmt.Fprintln(p.w, "No upcoming launch scheduled.")
		return err
	}
	_, err := fmt.Fprint(p.w, formatLaunch(*l))
	return err
}

func (p *printer) launches(ls []spacex.Launch) error {
	if p.json {
		return p.encode(ls)
	}
	if len(ls) == 0 {
		_, err := fmt.Fprintln(p.w, "No launches found.")
		return err
	}
	blocks := make([]string, 0, len(ls))
	for _, l := range ls {
		blocks = append(blocks, formatLaunch(l))
	}
	_, err := fmt.Fprint(p.w, strings.Join(blocks, "\n"))
	return err
}

func (p *printer) launchpad(pad *spacex.Launchpad) error {
	if p.json {
		return p.encode(pad)
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(pad.FullName) + "\n")
	writeField(&b, "id", pad.ID)
	writeField(&b, "name", pad.Name)
	writeField(&b, "location", joinNonEmpty(", ", pad.Locality, pad.Region))
	writeField(&b, "coords", fmt.Sprintf("%.4f, %.4f", pad.Latitude, pad.Longitude))
	writeField(&b, "status", pad.Status)
	writeField(&b, "timezone", pad.Timezone)
	writeField(&b, "launches", fmt.Sprintf("%d/%d successful", pad.LaunchSuccesses, pad.LaunchAttempts))
	writeField(&b, "details", pad.Details)
	_, err := fmt.Fprint(p.w, b.String())
	return err
}

func (p *printer) payloads(ps []spacex.Payload) error {
	if p.json {
		return p.encode(ps)
	}
	if len(ps) == 0 {
		_, err := fmt.Fprintln(p.w, "No payloads.")
		return err
	}
	var b strings.Builder
	for i, pl := range ps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(pl.Name) + "\n")
		writeField(&b, "id", pl.ID)
		writeField(&b, "type", pl.Type)
		writeField(&b, "orbit", joinNonEmpty(" / ", pl.Orbit, pl.Regime))
		writeField(&b, "mass", formatMass(pl.MassKg))
		writeField(&b, "customers", strings.Join(pl.Customers, ", "))
	}
	_, err := fmt.Fprint(p.w, b.String())
	return err
}

func formatLaunch(l spacex.Launch) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (#%d)", l.Name, l.FlightNumber)) + "\n")
	writeField(&b, "id", l.ID)
	date := l.DateUTC.UTC().Format(time.RFC3339)
	if l.DatePrecision != "" {
		date += " (" + l.DatePrecision + ")"
	}
	writeField(&b, "date", date)
	writeField(&b, "status", launchStatus(l))
	writeField(&b, "launchpad", l.Launchpad)
	writeField(&b, "payloads", strings.Join(l.Payloads, ", "))
	for _, f := range l.Failures {
		writeField(&b, "failure", fmt.Sprintf("T+%ds %s", f.Time, f.Reason))
	}
	writeField(&b, "webcast", l.Links.Webcast)
	writeField(&b, "details", l.Details)
	return b.String()
}

func launchStatus(l spacex.Launch) string {
	switch {
	case l.Upcoming:
		return pendingStyle.Render("upcoming")
	case l.Success == nil:
		return pendingStyle.Render("unknown")
	case *l.Success:
		return successStyle.Render("success")
	default:
		return failureStyle.Render("failed")
	}
}

func formatMass(kg *float64) string {
	if kg == nil {
		return ""
	}
	return strconv.FormatFloat(*kg, 'f', -1, 64) + " kg"
}

// writeField skips empty values.
func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	b.WriteString("  " + labelStyle.Render(label) + value + "\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
