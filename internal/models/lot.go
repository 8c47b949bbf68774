package models

// Lot is a discrete purchase record tracked for LIFO unwind accounting.
type Lot struct {
	Shares float64 `json:"shares"`
	Price  float64 `json:"price"`
	Level  int     `json:"level"`
}

// Value marks the lot to the given price.
func (l Lot) Value(price float64) float64 {
	return l.Shares * price
}
