package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half away from zero
		{" 2.50 ", 250, true},
		{"-125.50", -12550, true},
		{"+4500", 450000, true},
		{"$89.99", 8999, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"1e3", 0, false},
		{"--1", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		full  string
		whole string
	}{
		{0, "$0.00", "$0"},
		{5, "$0.05", "$0"},
		{12550, "$125.50", "$125"},
		{-12550, "-$125.50", "-$125"},
		{120000, "$1,200.00", "$1,200"},
		{1500000, "$15,000.00", "$15,000"},
		{123456789, "$1,234,567.89", "$1,234,567"},
	}
	for _, tc := range cases {
		m := Money{Cents: tc.cents}
		if got := m.String(); got != tc.full {
			t.Errorf("String(%d) = %q, want %q", tc.cents, got, tc.full)
		}
		if got := m.Whole(); got != tc.whole {
			t.Errorf("Whole(%d) = %q, want %q", tc.cents, got, tc.whole)
		}
	}
}

func TestDollars(t *testing.T) {
	if got := Dollars(-125.50).Cents; got != -12550 {
		t.Fatalf("Dollars(-125.50) = %d", got)
	}
	if got := Dollars(15.99).Cents; got != 1599 {
		t.Fatalf("Dollars(15.99) = %d", got)
	}
}

func TestPercentZeroWhole(t *testing.T) {
	if got := Percent(Dollars(10), Money{}); got != 0 {
		t.Fatalf("Percent with zero whole = %v, want 0", got)
	}
}
