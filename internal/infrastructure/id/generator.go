package id

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator derives item ids and plate/VIN candidates from random UUIDs.
// Candidates are only candidates: the ledger's uniqueness constraint decides
// whether a pair is actually free.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (*UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// NewPlate returns an 8-character registration plate, e.g. "4FA7-09BC".
func (*UUIDGenerator) NewPlate() string {
	hex := compactUpper(uuid.NewString())
	return hex[:4] + "-" + hex[4:8]
}

// NewVIN returns a 17-character vehicle identification number.
func (*UUIDGenerator) NewVIN() string {
	hex := compactUpper(uuid.NewString())
	return hex[:17]
}

func compactUpper(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "-", ""))
}
