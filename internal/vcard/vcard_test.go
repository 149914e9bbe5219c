package vcard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cardpulse/internal/types"
)

func TestMarshal_FullCard(t *testing.T) {
	card := types.BusinessCard{
		CardFields: types.CardFields{
			Name:        "Jane Doe",
			CompanyName: "Acme Corp",
			JobTitle:    "CTO",
			Phone:       "+1 555 0100",
			Email:       "jane@acme.test",
			Website:     "https://acme.test",
			Address:     "1 Main St",
		},
	}

	got := Marshal(card)
	want := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Jane Doe",
		"ORG:Acme Corp",
		"TITLE:CTO",
		"TEL:+1 555 0100",
		"EMAIL:jane@acme.test",
		"URL:https://acme.test",
		"ADR:;;1 Main St",
		"END:VCARD",
	}, "\n")

	assert.Equal(t, want, got)
}

func TestMarshal_EmptyFieldsStillPresent(t *testing.T) {
	got := Marshal(types.BusinessCard{})

	for _, line := range []string{"FN:", "ORG:", "TITLE:", "TEL:", "EMAIL:", "URL:", "ADR:;;"} {
		assert.Contains(t, got, "\n"+line+"\n", "property %q should be present even when empty", line)
	}
	assert.True(t, strings.HasPrefix(got, "BEGIN:VCARD\nVERSION:3.0\n"))
	assert.True(t, strings.HasSuffix(got, "\nEND:VCARD"))
}

func TestMarshal_EscapesReservedCharacters(t *testing.T) {
	card := types.BusinessCard{
		CardFields: types.CardFields{
			Name:    "Doe; Jane, Jr.",
			Address: "1 Main St\nSuite 4",
		},
	}

	got := Marshal(card)
	assert.Contains(t, got, "FN:Doe\\; Jane\\, Jr.")
	assert.Contains(t, got, "ADR:;;1 Main St\\nSuite 4")
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		card types.BusinessCard
		want string
	}{
		{
			name: "uses contact name",
			card: types.BusinessCard{CardFields: types.CardFields{Name: "Jane Doe"}},
			want: "Jane Doe.vcf",
		},
		{
			name: "falls back when empty",
			card: types.BusinessCard{},
			want: "contact.vcf",
		},
		{
			name: "falls back when whitespace only",
			card: types.BusinessCard{CardFields: types.CardFields{Name: "   "}},
			want: "contact.vcf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.card))
		})
	}
}
