// Package ui renders operator-facing output: the final provisioning summary
// and the DNS check report. Pure formatting; no decision logic lives here.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/hostprep/hostprep/internal/provisioning"
)

// Summary holds everything the final report needs. It is assembled by the
// provision handler from the run's config and state.
type Summary struct {
	Domain     string
	PublicIP   string
	BinaryPath string
	AdminPort  int
	Ports      []int
	DNS        *provisioning.DNSResult
	Fullchain  string
	Privkey    string
	Styled     bool
}

// IsInteractiveTTY reports whether stdout is an interactive terminal.
func IsInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// RenderSummary formats the operator-facing next steps after a successful run.
func RenderSummary(s Summary) string {
	var b strings.Builder

	title := fmt.Sprintf("hostprep: %s provisioned", s.Domain)
	b.WriteString("\n  " + style(titleStyle, title, s.Styled) + "\n")
	b.WriteString("  " + strings.Repeat("═", len(title)) + "\n\n")

	b.WriteString("  " + style(sectionStyle, "Install", s.Styled) + "\n")
	b.WriteString("  " + strings.Repeat("─", 35) + "\n")
	writeRow(&b, true, "Binary", s.BinaryPath, s.Styled)
	if s.Fullchain != "" {
		writeRow(&b, true, "Certificate", s.Fullchain, s.Styled)
		writeRow(&b, true, "Private key", s.Privkey, s.Styled)
	}

	b.WriteString("\n  " + style(sectionStyle, "DNS", s.Styled) + "\n")
	b.WriteString("  " + strings.Repeat("─", 35) + "\n")
	writeDNSRow(&b, s.Domain, s.PublicIP, s.DNS, s.Styled)

	b.WriteString("\n  " + style(sectionStyle, "Next steps", s.Styled) + "\n")
	b.WriteString("  " + strings.Repeat("─", 35) + "\n")

	ports := make([]string, 0, len(s.Ports)+1)
	for _, p := range s.Ports {
		ports = append(ports, fmt.Sprintf("%d", p))
	}
	ports = append(ports, fmt.Sprintf("%d", s.AdminPort))
	b.WriteString(fmt.Sprintf("  - Open firewall ports: %s\n", strings.Join(ports, ", ")))
	b.WriteString(fmt.Sprintf("  - Admin interface: https://%s:%d\n", s.PublicIP, s.AdminPort))
	b.WriteString(fmt.Sprintf("  - Start the service: %s\n", s.BinaryPath))
	b.WriteString("\n")

	return b.String()
}

// RenderDNSCheck formats a standalone DNS check result.
func RenderDNSCheck(domain, expectedIP string, res *provisioning.DNSResult, styled bool) string {
	var b strings.Builder
	b.WriteString("\n")
	writeDNSRow(&b, domain, expectedIP, res, styled)
	return b.String()
}

// writeDNSRow writes one row describing the DNS validation outcome.
func writeDNSRow(b *strings.Builder, domain, expectedIP string, res *provisioning.DNSResult, styled bool) {
	switch {
	case res == nil || res.ResolvedIP == "":
		m := style(warnStyle, warnMark, styled)
		b.WriteString(fmt.Sprintf("  %s  %s has no A record yet (expected %s)\n", m, domain, expectedIP))
	case res.Matches:
		m := style(okStyle, checkMark, styled)
		b.WriteString(fmt.Sprintf("  %s  %s resolves to %s\n", m, domain, res.ResolvedIP))
	default:
		m := style(failStyle, crossMark, styled)
		b.WriteString(fmt.Sprintf("  %s  %s resolves to %s, expected %s\n", m, domain, res.ResolvedIP, expectedIP))
	}
}

// writeRow writes one aligned status row.
func writeRow(b *strings.Builder, ok bool, name, extra string, styled bool) {
	m := style(okStyle, checkMark, styled)
	if !ok {
		m = style(failStyle, crossMark, styled)
	}
	if extra != "" {
		b.WriteString(fmt.Sprintf("  %s  %-14s %s\n", m, name, style(dimStyle, extra, styled)))
	} else {
		b.WriteString(fmt.Sprintf("  %s  %s\n", m, name))
	}
}

// style applies st only when styled output is enabled.
func style(st interface{ Render(...string) string }, s string, styled bool) string {
	if !styled {
		return s
	}
	return st.Render(s)
}
