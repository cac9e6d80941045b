package tui

import (
	"fmt"
	"strings"

	"github.com/sulaimaniyah/undangan/internal/content"
	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// Preview renders the four invitation pages for recipient as markdown.
func Preview(c *content.Content, recipient domain.RecipientInfo) string {
	var sb strings.Builder
	title := strings.Join(c.Event.Title, " ")

	fmt.Fprintf(&sb, "# Undangan\n\n")
	fmt.Fprintf(&sb, "_%s_\n\n**%s**\n\n%s\n\n", c.Organisation.Subtitle, c.Organisation.Name, c.Organisation.Tagline)
	fmt.Fprintf(&sb, "> **%s**  \n> %s  \n> Di Tempat\n\n", recipient.Name, recipient.Title)

	fmt.Fprintf(&sb, "## %s\n\n", title)
	fmt.Fprintf(&sb, "- **Tanggal:** %s\n", c.Event.Date)
	fmt.Fprintf(&sb, "- **Waktu:** %s\n", c.Event.Time)
	fmt.Fprintf(&sb, "- **Tempat:** %s\n", strings.Join(c.Event.Address, ", "))
	fmt.Fprintf(&sb, "- **Peta:** %s\n\n", c.MapLink())

	sb.WriteString("## Susunan Acara\n\n")
	for i, item := range c.Agenda {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, item)
	}

	sb.WriteString("\n## Konfirmasi Kehadiran\n\n")
	sb.WriteString("Nama Lengkap, lalu _Insya Allah Hadir_ atau _Berhalangan_.\n")
	return sb.String()
}

// Summary renders a stored session as markdown.
func Summary(snap *domain.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Sesi `%s`\n\n", snap.SessionID)
	fmt.Fprintf(&sb, "| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Tampilan | %s |\n", snap.View)
	fmt.Fprintf(&sb, "| Penerima | %s %s |\n", snap.Recipient.Name, snap.Recipient.Title)
	fmt.Fprintf(&sb, "| Nama | %s |\n", orDash(snap.Form.Name))
	fmt.Fprintf(&sb, "| Kehadiran | %s |\n", snap.Form.Attending.Label())
	fmt.Fprintf(&sb, "| Diperbarui | %s |\n", snap.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	if snap.FormError != "" {
		fmt.Fprintf(&sb, "\n**Galat:** %s\n", snap.FormError)
	}
	if snap.Outcome != nil {
		fmt.Fprintf(&sb, "\n## Pesan (%s)\n\n%s\n", snap.Outcome.Result(), snap.Outcome.Message)
	}
	return sb.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
