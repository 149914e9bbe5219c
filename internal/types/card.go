// Package types defines the core domain types shared across the application.
package types

import (
	"time"

	"github.com/google/uuid"
)

// CardFields holds the seven contact fields extracted from a business card.
// Every field is always a string; unknown values are empty strings, never null.
type CardFields struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	JobTitle    string `json:"jobTitle"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Address     string `json:"address"`
}

// BusinessCard is one scanned card: the extracted fields plus identity,
// the captured image, and the creation timestamp.
type BusinessCard struct {
	CardFields

	// ID is an opaque unique identifier assigned at creation, immutable.
	ID string `json:"id"`
	// ImageSource is the captured image as a data URL, embedded in the record.
	ImageSource string `json:"imageSource"`
	// CreatedAt is the creation time in Unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// NewBusinessCard builds a card from normalized fields and an image reference,
// assigning a fresh ID and creation timestamp.
func NewBusinessCard(fields CardFields, imageSource string) BusinessCard {
	return BusinessCard{
		CardFields:  fields,
		ID:          uuid.New().String(),
		ImageSource: imageSource,
		CreatedAt:   time.Now().UnixMilli(),
	}
}

// ScanStatus is the user-visible state of the capture flow.
type ScanStatus string

// Scan status values
const (
	ScanIdle     ScanStatus = "idle"
	ScanScanning ScanStatus = "scanning"
	ScanSuccess  ScanStatus = "success"
	ScanError    ScanStatus = "error"
)
