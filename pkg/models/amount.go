package models

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount represents a monetary amount as the backend sends it: a decimal
// string plus an ISO currency code.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// Decimal parses the amount's value. An empty value is zero.
func (a Amount) Decimal() (decimal.Decimal, error) {
	if a.Value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(a.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", a.Value, err)
	}
	return d, nil
}

// MinorUnits converts the amount to integer minor units (e.g. pence) using
// the currency's fraction, rounding half away from zero.
func (a Amount) MinorUnits() (int64, error) {
	d, err := a.Decimal()
	if err != nil {
		return 0, err
	}
	fraction := 2
	if c := money.GetCurrency(a.Currency); c != nil {
		fraction = c.Fraction
	}
	return d.Shift(int32(fraction)).Round(0).IntPart(), nil
}

func (a Amount) ToMoney() *money.Money {
	minor, err := a.MinorUnits()
	if err != nil {
		panic(fmt.Sprintf("failed to parse amount: %v", err))
	}
	return money.New(minor, a.Currency)
}
