package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", `"0.00"`},
		{"25", `"25.00"`},
		{"79.999", `"80.00"`},
		{"51.005", `"51.01"`},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		got, err := json.Marshal(NewMoneyFromDecimal(d))
		if err != nil {
			t.Fatalf("marshal %q: %v", tc.in, err)
		}
		if string(got) != tc.want {
			t.Fatalf("marshal %q: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	var fromString Money
	if err := json.Unmarshal([]byte(`"123.456"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if fromString.String() != "123.46" {
		t.Fatalf("expected 123.46, got %s", fromString.String())
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`50`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fromNumber.String() != "50.00" {
		t.Fatalf("expected 50.00, got %s", fromNumber.String())
	}

	var bad Money
	if err := json.Unmarshal([]byte(`"abc"`), &bad); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
}

func TestSellingPrice(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount int
		want     string
	}{
		{"no discount", "100.00", 0, "100.00"},
		{"twenty percent", "100.00", 20, "80.00"},
		{"full discount", "100.00", 100, "0.00"},
		{"rounds half up", "49.99", 15, "42.49"},
		{"negative ignored", "100.00", -5, "100.00"},
		{"over hundred ignored", "100.00", 120, "100.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tc.price)
			if err != nil {
				t.Fatalf("parse price: %v", err)
			}
			p := Product{Price: NewMoneyFromDecimal(d), Discount: tc.discount}
			if got := p.SellingPrice().String(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
