// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/cardpulse/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCard outputs a human-readable summary of one scanned contact.
func (p *Printer) PrintCard(card types.BusinessCard) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(card.Name)))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", orDash(card.CompanyName)))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orDash(card.JobTitle)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(card.Phone)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(card.Email)))
	sb.WriteString(fmt.Sprintf("Website:  %s\n", orDash(card.Website)))
	sb.WriteString(fmt.Sprintf("Address:  %s\n", orDash(card.Address)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("ID:       %s\n", card.ID))
	sb.WriteString(fmt.Sprintf("Scanned:  %s", formatCreatedAt(card.CreatedAt)))

	p.printBox("CONTACT", sb.String())
}

// PrintCollection outputs the whole collection, newest first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCollection(cards []types.BusinessCard) {
	if len(cards) == 0 {
		fmt.Fprintln(p.out, "No contacts scanned yet.")
		return
	}

	fmt.Fprintf(p.out, "%d contact(s):\n\n", len(cards))
	for _, card := range cards {
		name := orDash(card.Name)
		company := card.CompanyName
		if company != "" {
			company = " - " + company
		}
		fmt.Fprintf(p.out, "  %s%s\n", name, company)
		fmt.Fprintf(p.out, "      %s  %s\n", card.ID, formatCreatedAt(card.CreatedAt))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatCreatedAt(unixMilli int64) string {
	if unixMilli == 0 {
		return "-"
	}
	return time.UnixMilli(unixMilli).Format("2006-01-02 15:04")
}
