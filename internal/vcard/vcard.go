// Package vcard serializes scanned cards to vCard 3.0 documents for export.
package vcard

import (
	"strings"

	"github.com/jonathan/cardpulse/internal/types"
)

// MIMEType is the content type for exported contact cards.
const MIMEType = "text/vcard"

// Marshal renders one card as a vCard 3.0 document.
func Marshal(card types.BusinessCard) string {
	var sb strings.Builder
	sb.WriteString("BEGIN:VCARD\n")
	sb.WriteString("VERSION:3.0\n")
	sb.WriteString("FN:" + escape(card.Name) + "\n")
	sb.WriteString("ORG:" + escape(card.CompanyName) + "\n")
	sb.WriteString("TITLE:" + escape(card.JobTitle) + "\n")
	sb.WriteString("TEL:" + escape(card.Phone) + "\n")
	sb.WriteString("EMAIL:" + escape(card.Email) + "\n")
	sb.WriteString("URL:" + escape(card.Website) + "\n")
	sb.WriteString("ADR:;;" + escape(card.Address) + "\n")
	sb.WriteString("END:VCARD")
	return sb.String()
}

// Filename derives the download name from the contact, falling back to
// "contact.vcf" when the name field is empty.
func Filename(card types.BusinessCard) string {
	name := strings.TrimSpace(card.Name)
	if name == "" {
		name = "contact"
	}
	return name + ".vcf"
}

// escape protects line breaks and reserved characters per RFC 2426.
func escape(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"\r\n", "\\n",
		"\n", "\\n",
		";", "\\;",
		",", "\\,",
	)
	return r.Replace(s)
}
