package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("catalog: item not found")
	ErrInvalidID       = errors.New("catalog: item id is required")
	ErrInvalidPrice    = errors.New("catalog: price must be zero or greater")
	ErrInvalidStock    = errors.New("catalog: stock must be zero or greater")
	ErrOutOfStock      = errors.New("catalog: item out of stock")
	ErrInvalidDiscount = errors.New("catalog: discount must be within (0, 1]")
	ErrInvalidMileage  = errors.New("catalog: mileage must be zero or greater")
)

type Category string

// Item is a purchasable vehicle listing. Prices are in the smallest currency
// unit; Stock is never negative. Items referenced by a committed sale are
// soft-disabled rather than removed so the ledger stays resolvable.
type Item struct {
	ID          string
	Name        string
	Description string
	Category    Category
	BasePrice   int64
	Stock       int
	IsUsed      bool
	Mileage     int
	VIPOnly     bool
	Disabled    bool
	Specs       map[string]string
	UpdatedAt   time.Time
}

func New(id, name string, category Category, basePrice int64, stock int) (*Item, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	if basePrice < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	return &Item{
		ID:        id,
		Name:      name,
		Category:  category,
		BasePrice: basePrice,
		Stock:     stock,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// AdjustStock applies delta and clamps the result at zero. Over-decrement is
// policy, not an error: the result floors at empty.
func (i *Item) AdjustStock(delta int) int {
	next := i.Stock + delta
	if next < 0 {
		next = 0
	}
	i.Stock = next
	i.touch()
	return next
}

// Deduct consumes exactly one unit of stock.
func (i *Item) Deduct() error {
	if i.Stock <= 0 {
		return ErrOutOfStock
	}
	i.Stock--
	i.touch()
	return nil
}

func (i *Item) SetPrice(price int64) error {
	if price < 0 {
		return ErrInvalidPrice
	}
	i.BasePrice = price
	i.touch()
	return nil
}

func (i *Item) Disable() {
	i.Disabled = true
	i.touch()
}

// Clone returns a deep copy, including the specs map.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	if i.Specs != nil {
		clone.Specs = make(map[string]string, len(i.Specs))
		for k, v := range i.Specs {
			clone.Specs[k] = v
		}
	}
	return &clone
}

func (i *Item) touch() {
	i.UpdatedAt = time.Now().UTC()
}
