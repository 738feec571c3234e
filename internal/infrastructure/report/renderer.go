// Package report renders checklist findings and visit service reports as
// sanitized HTML.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	chkusecases "solarops/internal/application/checklist/usecases"
	notifusecases "solarops/internal/application/notification/usecases"
	"solarops/internal/domain/checklist"
	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/shared/biztime"
)

// DefaultLocale formats numbers the Norwegian way.
const DefaultLocale = "nb"

const timestampLayout = "02.01.2006 15:04"

// Renderer builds report markdown and converts it to HTML. Numbers are
// formatted for the configured locale; timestamps use the business timezone.
type Renderer struct {
	conv    *converter
	printer *message.Printer
	caser   cases.Caser
}

func NewRenderer(locale string) (*Renderer, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid report locale %q: %w", locale, err)
	}
	return &Renderer{
		conv:    newConverter(),
		printer: message.NewPrinter(tag),
		caser:   cases.Title(tag),
	}, nil
}

// RenderHTML renders the findings report of one checklist.
func (r *Renderer) RenderHTML(ctx context.Context, data chkusecases.ReportData) (string, error) {
	var b strings.Builder
	b.WriteString("# Checklist report\n\n")
	r.writeChecklist(&b, data)
	fmt.Fprintf(&b, "\n_Generated %s_\n", formatTimestamp(data.GeneratedAt))
	return r.conv.toHTML(b.String())
}

// RenderServiceReport renders the report mailed after a visit completes. The
// markdown source doubles as the plain-text body.
func (r *Renderer) RenderServiceReport(ctx context.Context, data notifusecases.ServiceReportData) (*notifusecases.RenderedReport, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Service report %s, visit #%s\n\n", escape(data.AgreementNumber), r.printer.Sprintf("%d", data.VisitNumber))
	fmt.Fprintf(&b, "- Visit: `%s` (%s)\n", data.VisitID, r.label(data.VisitType))
	fmt.Fprintf(&b, "- Technician: `%s`\n", data.TechnicianID)
	fmt.Fprintf(&b, "- Completed: %s\n", formatTimestamp(data.CompletedAt))
	if data.DurationMinutes != nil {
		fmt.Fprintf(&b, "- Duration: %s\n", r.duration(*data.DurationMinutes))
	}
	if notes := strings.TrimSpace(data.Notes); notes != "" {
		fmt.Fprintf(&b, "\n%s\n", escape(notes))
	}

	if len(data.Checklists) == 0 {
		b.WriteString("\nNo checklists were recorded for this visit.\n")
	}
	for _, c := range data.Checklists {
		b.WriteString("\n")
		r.writeChecklist(&b, c)
	}

	text := b.String()
	html, err := r.conv.toHTML(text)
	if err != nil {
		return nil, err
	}
	return &notifusecases.RenderedReport{HTML: html, Text: text}, nil
}

func (r *Renderer) writeChecklist(b *strings.Builder, data chkusecases.ReportData) {
	title := data.TemplateName
	if title == "" {
		title = "Checklist " + data.ChecklistID
	}
	if data.Version > 0 {
		title = fmt.Sprintf("%s (version %d)", title, data.Version)
	}
	fmt.Fprintf(b, "## %s\n\n", escape(title))

	fmt.Fprintf(b, "Status: **%s**", r.label(data.Status))
	if data.CompletedAt != nil {
		fmt.Fprintf(b, ", completed %s", formatTimestamp(*data.CompletedAt))
	}
	b.WriteString("\n\n")

	s := data.Summary
	fmt.Fprintf(b, "Progress: %s of %s items answered (%s %%)\n\n",
		r.printer.Sprintf("%d", s.Completed),
		r.printer.Sprintf("%d", s.Total),
		r.printer.Sprintf("%d", s.Progress),
	)

	if len(s.Categories) > 0 {
		b.WriteString("| Category | Answered | Issues |\n|---|---|---|\n")
		for _, cat := range s.Categories {
			issues := "no"
			if cat.HasIssues {
				issues = "yes"
			}
			fmt.Fprintf(b, "| %s | %s / %s | %s |\n",
				cell(cat.Category),
				r.printer.Sprintf("%d", cat.Completed),
				r.printer.Sprintf("%d", cat.Total),
				issues,
			)
		}
		b.WriteString("\n")
	}

	if len(data.Findings) == 0 {
		b.WriteString("No findings.\n")
	} else {
		b.WriteString("| Severity | Findings |\n|---|---|\n")
		for _, sev := range vo.Severities {
			fmt.Fprintf(b, "| %s | %s |\n", r.label(sev.String()), r.printer.Sprintf("%d", s.FindingsBySeverity[sev]))
		}
		b.WriteString("\n")
		for i, f := range data.Findings {
			severity := "Unrated"
			if f.Severity != nil {
				severity = r.label(f.Severity.String())
			}
			fmt.Fprintf(b, "%d. **%s**: %s / %s", i+1, severity, escape(f.Category), escape(f.Description))
			if f.Value != nil && *f.Value != "" {
				fmt.Fprintf(b, ". Reading: %s", escape(*f.Value))
			}
			if notes := strings.TrimSpace(f.Notes); notes != "" {
				fmt.Fprintf(b, ". Notes: %s", escape(notes))
			}
			if n := len(f.PhotoURLs); n > 0 {
				b.WriteString(r.printer.Sprintf(" (%d photo(s))", n))
			}
			b.WriteString("\n")
		}
	}

	if len(data.Deviations) > 0 {
		b.WriteString("\n### Deviations\n\n")
		for _, d := range data.Deviations {
			fmt.Fprintf(b, "- %s / %s: %s\n", escape(d.Category), escape(d.Description), escape(r.deviationDetail(d)))
		}
	}

	if notes := strings.TrimSpace(data.Notes); notes != "" {
		fmt.Fprintf(b, "\n> %s\n", escape(notes))
	}
}

func (r *Renderer) deviationDetail(d checklist.Deviation) string {
	if d.Kind == checklist.DeviationPhotoMissing {
		return "Required photo missing"
	}
	return r.label(string(d.Kind)) + ", " + d.Detail
}

func (r *Renderer) duration(minutes int) string {
	if minutes < 60 {
		return r.printer.Sprintf("%d min", minutes)
	}
	return r.printer.Sprintf("%d h %d min", minutes/60, minutes%60)
}

// label turns an enum value such as NOT_APPLICABLE into "Not applicable".
func (r *Renderer) label(v string) string {
	if v == "" {
		return ""
	}
	words := strings.ToLower(strings.ReplaceAll(v, "_", " "))
	first, rest, _ := strings.Cut(words, " ")
	if rest == "" {
		return r.caser.String(first)
	}
	return r.caser.String(first) + " " + rest
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
	"\r\n", " ",
	"\n", " ",
)

// escape neutralizes markdown syntax in free text entered on site.
func escape(s string) string {
	return markdownEscaper.Replace(s)
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return escape(s)
}

func formatTimestamp(t time.Time) string {
	return biztime.FormatInBizTimezone(t, timestampLayout)
}
