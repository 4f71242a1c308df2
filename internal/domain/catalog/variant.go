package catalog

import (
	"math"
	"strconv"
	"time"
)

// DeriveUsedVariant builds a used listing from a base item. The price is the
// base price scaled by discount, rounded half-up. Each used unit is a single
// physical vehicle, so stock is fixed at one. The caller supplies the new id.
func DeriveUsedVariant(base *Item, id string, mileage int, discount float64) (*Item, error) {
	if base == nil {
		return nil, ErrNotFound
	}
	if id == "" {
		return nil, ErrInvalidID
	}
	if discount <= 0 || discount > 1 {
		return nil, ErrInvalidDiscount
	}
	if mileage < 0 {
		return nil, ErrInvalidMileage
	}

	variant := base.Clone()
	variant.ID = id
	variant.Name = base.Name + " (used)"
	variant.BasePrice = roundHalfUp(float64(base.BasePrice) * discount)
	variant.IsUsed = true
	variant.Mileage = mileage
	variant.Stock = 1
	variant.Disabled = false
	if variant.Specs == nil {
		variant.Specs = make(map[string]string, 1)
	}
	variant.Specs["mileage"] = strconv.Itoa(mileage)
	variant.UpdatedAt = time.Now().UTC()
	return variant, nil
}

// roundHalfUp rounds to the nearest integer with .5 rounding away from zero.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
