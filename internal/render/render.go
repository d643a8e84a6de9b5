// Package render writes analysis results as text, YAML or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/its-lee/crony"
)

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat returns the format named s, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Detail controls how much is printed about each job.
type Detail int

const (
	// DetailNone prints the job only.
	DetailNone Detail = iota
	// DetailCount adds the number of occurrences.
	DetailCount
	// DetailFull adds every occurrence.
	DetailFull
)

func (d Detail) String() string {
	switch d {
	case DetailCount:
		return "count"
	case DetailFull:
		return "full"
	default:
		return "none"
	}
}

// ParseDetail returns the detail level named s.
func ParseDetail(s string) (Detail, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return DetailNone, nil
	case "count":
		return DetailCount, nil
	case "full":
		return DetailFull, nil
	}
	return DetailNone, fmt.Errorf("unknown detail level %q", s)
}

// Report is everything known about one analysis.
type Report struct {
	Source string
	Begin  time.Time
	End    time.Time
	Jobs   []crony.JobOccurrences
}

// Options tune the output.
type Options struct {
	Format        Format
	Detail        Detail
	ExcludeHeader bool
	// OnlyCommand prints the command instead of the whole line. It only
	// affects text output; structured output always carries both.
	OnlyCommand bool
	// Styled enables terminal styling of the text output. Styling is also
	// dropped when w does not support it.
	Styled bool
}

// Header returns the line introducing a text report.
func Header(r *Report) string {
	return fmt.Sprintf("For %s: %s -> %s", r.Source, r.Begin.Format(crony.DateFormat), r.End.Format(crony.DateFormat))
}

// Write renders r to w.
func Write(w io.Writer, r *Report, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return writeText(w, r, opts)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document(r, opts)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(document(r, opts)); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", opts.Format)
}

type textStyles struct {
	header func(...string) string
	job    func(...string) string
	detail func(...string) string
}

func newTextStyles(w io.Writer, styled bool) textStyles {
	if !styled {
		plain := func(strs ...string) string { return strings.Join(strs, " ") }
		return textStyles{header: plain, job: plain, detail: plain}
	}
	r := lipgloss.NewRenderer(w)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return textStyles{
		header: base.Bold(true).Foreground(lipgloss.Color("69")).Render,
		job:    base.Bold(true).Render,
		detail: base.Foreground(lipgloss.Color("#626262")).Render,
	}
}

func writeText(w io.Writer, r *Report, opts Options) error {
	styles := newTextStyles(w, opts.Styled)

	var sb strings.Builder
	if !opts.ExcludeHeader {
		sb.WriteString(styles.header(Header(r)))
		sb.WriteString("\n\n")
	}
	for _, jo := range r.Jobs {
		text := jo.Job.Line
		if opts.OnlyCommand {
			text = jo.Job.Command
		}
		sb.WriteString(styles.job(text))
		sb.WriteString("\n")

		if opts.Detail >= DetailCount {
			sb.WriteString("\t")
			sb.WriteString(styles.detail(fmt.Sprintf("Occurrences: %d", len(jo.Occurrences))))
			sb.WriteString("\n")
		}
		if opts.Detail >= DetailFull {
			for _, t := range jo.Occurrences {
				sb.WriteString("\t\t")
				sb.WriteString(t.Format(crony.DateFormat))
				sb.WriteString("\n")
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// reportDoc is the shape of structured output.
type reportDoc struct {
	Source string   `json:"source,omitempty" yaml:"source,omitempty"`
	Begin  string   `json:"begin,omitempty" yaml:"begin,omitempty"`
	End    string   `json:"end,omitempty" yaml:"end,omitempty"`
	Jobs   []jobDoc `json:"jobs" yaml:"jobs"`
}

type jobDoc struct {
	LineNumber  int      `json:"line_number" yaml:"line_number"`
	Line        string   `json:"line" yaml:"line"`
	Kind        string   `json:"kind" yaml:"kind"`
	Schedule    string   `json:"schedule" yaml:"schedule"`
	Command     string   `json:"command" yaml:"command"`
	Count       *int     `json:"count,omitempty" yaml:"count,omitempty"`
	Occurrences []string `json:"occurrences,omitempty" yaml:"occurrences,omitempty"`
}

func document(r *Report, opts Options) reportDoc {
	doc := reportDoc{Jobs: make([]jobDoc, 0, len(r.Jobs))}
	if !opts.ExcludeHeader {
		doc.Source = r.Source
		doc.Begin = r.Begin.Format(crony.DateFormat)
		doc.End = r.End.Format(crony.DateFormat)
	}
	for _, jo := range r.Jobs {
		j := jobDoc{
			LineNumber: jo.Job.LineNumber,
			Line:       jo.Job.Line,
			Kind:       jo.Job.Kind.String(),
			Schedule:   jo.Job.Spec,
			Command:    jo.Job.Command,
		}
		if opts.Detail >= DetailCount {
			n := len(jo.Occurrences)
			j.Count = &n
		}
		if opts.Detail >= DetailFull {
			j.Occurrences = make([]string, len(jo.Occurrences))
			for i, t := range jo.Occurrences {
				j.Occurrences[i] = t.Format(crony.DateFormat)
			}
		}
		doc.Jobs = append(doc.Jobs, j)
	}
	return doc
}
