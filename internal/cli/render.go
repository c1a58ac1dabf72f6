package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/neurogrid/storefront/core/checkout"
	"github.com/neurogrid/storefront/core/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	priceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	featureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1).
			Width(36)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func renderPackage(p checkout.Package) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(priceStyle.Render(fmt.Sprintf("$%d %s", p.Price, p.Currency)))
	b.WriteString("  ")
	b.WriteString(idStyle.Render("buy " + p.ID))
	for _, f := range p.Features {
		b.WriteString("\n")
		b.WriteString(featureStyle.Render("• " + f))
	}
	return cardStyle.Render(b.String())
}

func renderPackages(w io.Writer, pkgs []checkout.Package, consultation checkout.Package) {
	cards := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		cards = append(cards, renderPackage(p))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	fmt.Fprintln(w, idStyle.Render(fmt.Sprintf("%s: $%d %s (consult)", consultation.Name, consultation.Price, consultation.Currency)))
}

func renderSession(w io.Writer, snap session.Snapshot) {
	if !snap.IsAuthenticated() {
		fmt.Fprintln(w, warnStyle.Render("Not logged in."))
		return
	}
	u := snap.User
	name := u.FullName
	if name == "" {
		name = u.Email
	}
	fmt.Fprintln(w, successStyle.Render("Logged in as "+name))
	fmt.Fprintf(w, "  email:   %s\n", u.Email)
	fmt.Fprintf(w, "  id:      %s\n", u.ID)
	if !snap.ExpiresAt.IsZero() {
		fmt.Fprintf(w, "  expires: %s\n", snap.ExpiresAt.Local().Format(time.RFC1123))
	}
	if len(u.CoursesEnrolled) > 0 {
		fmt.Fprintf(w, "  courses: %s\n", strings.Join(u.CoursesEnrolled, ", "))
	}
}

func renderSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render(msg))
}

func renderNotice(w io.Writer, msg string) {
	fmt.Fprintln(w, warnStyle.Render(msg))
}
