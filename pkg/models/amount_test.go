package models

import (
	"testing"
)

func TestAmountMinorUnits(t *testing.T) {
	testCases := []struct {
		name           string
		amount         Amount
		expectedAmount int64
	}{
		{
			name:           "Whole number",
			amount:         Amount{Value: "100", Currency: "GBP"},
			expectedAmount: 10000,
		},
		{
			name:           "Decimal number",
			amount:         Amount{Value: "25.99", Currency: "GBP"},
			expectedAmount: 2599,
		},
		{
			name:           "Single decimal place",
			amount:         Amount{Value: "10.5", Currency: "GBP"},
			expectedAmount: 1050,
		},
		{
			name:           "Half rounds away from zero",
			amount:         Amount{Value: "15.005", Currency: "GBP"},
			expectedAmount: 1501,
		},
		{
			name:           "Negative half rounds away from zero",
			amount:         Amount{Value: "-15.005", Currency: "GBP"},
			expectedAmount: -1501,
		},
		{
			name:           "Empty value is zero",
			amount:         Amount{Value: "", Currency: "GBP"},
			expectedAmount: 0,
		},
		{
			name:           "Zero-fraction currency",
			amount:         Amount{Value: "250", Currency: "JPY"},
			expectedAmount: 250,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.amount.MinorUnits()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tc.expectedAmount {
				t.Errorf("Expected amount %d, got %d", tc.expectedAmount, result)
			}
		})
	}
}

func TestAmountMinorUnitsInvalid(t *testing.T) {
	_, err := Amount{Value: "not-a-number", Currency: "GBP"}.MinorUnits()
	if err == nil {
		t.Errorf("Expected error for invalid value, got nil")
	}
}

func TestAmountToMoney(t *testing.T) {
	m := Amount{Value: "25.99", Currency: "GBP"}.ToMoney()
	if m.Amount() != 2599 {
		t.Errorf("Expected amount 2599, got %d", m.Amount())
	}
	if m.Currency().Code != "GBP" {
		t.Errorf("Expected currency GBP, got %s", m.Currency().Code)
	}
}

func TestInvoiceKeyRoundTrip(t *testing.T) {
	inv := Invoice{Account: "C1", Reference: "INV-0042"}
	key := inv.Key()
	if key != "C1:INV-0042" {
		t.Errorf("Expected key C1:INV-0042, got %s", key)
	}

	account, reference, err := SplitInvoiceKey(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account != "C1" || reference != "INV-0042" {
		t.Errorf("Expected C1/INV-0042, got %s/%s", account, reference)
	}

	if _, _, err := SplitInvoiceKey("no-separator"); err == nil {
		t.Errorf("Expected error for malformed key, got nil")
	}
}
