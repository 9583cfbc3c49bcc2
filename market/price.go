// Copyright 2025 The HederaMarketPlace Authors
// This file is part of the hederamarket library.
//
// The hederamarket library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The hederamarket library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the hederamarket library. If not, see <http://www.gnu.org/licenses/>.

package market

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// PriceDecimals is the canonical fixed-point precision of all contract
// price fields: 8 decimal places (tinybar). Every decimal<->integer
// conversion happens here and nowhere else; views never convert inline.
const PriceDecimals = 8

// tinybarPerUnit is 10^PriceDecimals.
var tinybarPerUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(PriceDecimals), nil)

// Errors for price parsing and validation.
var (
	ErrMalformedPrice = errors.New("market: malformed price")
	ErrNegativePrice  = errors.New("market: price cannot be negative")
	ErrPricePrecision = errors.New("market: price has more than 8 fractional digits")
)

// Price is a contract price: a non-negative integer scaled by 10^8.
// The zero value is a zero price.
type Price struct {
	atomic *big.Int
}

// ParsePrice converts a decimal string such as "0.05" into a Price.
// Inputs with more than PriceDecimals fractional digits are rejected
// outright rather than silently truncated.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, ErrMalformedPrice
	}
	if strings.HasPrefix(s, "-") {
		return Price{}, ErrNegativePrice
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return Price{}, ErrMalformedPrice
	}
	if len(frac) > PriceDecimals {
		return Price{}, ErrPricePrecision
	}
	if whole == "" {
		whole = "0"
	}
	// big.Int.SetString accepts signs and separators; the price grammar is
	// plain digits on both sides of the point.
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return Price{}, ErrMalformedPrice
	}

	w, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return Price{}, ErrMalformedPrice
	}
	atomic := new(big.Int).Mul(w, tinybarPerUnit)

	if frac != "" {
		f, ok := new(big.Int).SetString(frac, 10)
		if !ok {
			return Price{}, ErrMalformedPrice
		}
		// Scale the fraction up to 8 digits: "05" → 05000000.
		for i := len(frac); i < PriceDecimals; i++ {
			f.Mul(f, big.NewInt(10))
		}
		atomic.Add(atomic, f)
	}
	return Price{atomic: atomic}, nil
}

// isDigits reports whether s consists solely of ASCII digits.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// PriceFromAtomic wraps a raw fixed-point integer read from the contract.
func PriceFromAtomic(v *big.Int) Price {
	if v == nil {
		return Price{}
	}
	return Price{atomic: new(big.Int).Set(v)}
}

// Atomic returns the fixed-point integer to hand to the contract. The
// returned value is a copy; mutating it does not affect the Price.
func (p Price) Atomic() *big.Int {
	if p.atomic == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(p.atomic)
}

// IsZero reports whether the price is zero (including the zero value).
func (p Price) IsZero() bool {
	return p.atomic == nil || p.atomic.Sign() == 0
}

// Equal reports whether two prices represent the same amount.
func (p Price) Equal(other Price) bool {
	return p.Atomic().Cmp(other.Atomic()) == 0
}

// String renders the price as a decimal string with trailing fractional
// zeros trimmed, so ParsePrice(p.String()) round-trips exactly.
func (p Price) String() string {
	atomic := p.Atomic()
	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(atomic, tinybarPerUnit, frac)
	if frac.Sign() == 0 {
		return whole.String()
	}
	digits := fmt.Sprintf("%0*s", PriceDecimals, frac.String())
	digits = strings.TrimRight(digits, "0")
	return whole.String() + "." + digits
}

// MarshalJSON encodes the price as its decimal string form.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a decimal string form produced by MarshalJSON.
func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
