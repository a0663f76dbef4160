// MIT License
//
// Copyright 2024 Hive Tools Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package hive

import (
	"fmt"
	"strconv"
	"strings"
)

// Asset is an amount of a Hive token, as returned by condenser_api in the
// form "1.234 HIVE". Amount holds the value scaled by 10^Precision so that
// no floating point rounding is involved.
type Asset struct {
	Amount    int64
	Precision uint8
	Symbol    string
}

// ParseAsset parses the condenser_api string form, e.g. "0.012 HBD" or
// "1.000000 VESTS".
func ParseAsset(s string) (Asset, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Asset{}, fmt.Errorf("invalid asset: %q", s)
	}
	value, symbol := fields[0], fields[1]

	var precision uint8
	if i := strings.IndexByte(value, '.'); i >= 0 {
		precision = uint8(len(value) - i - 1)
		value = value[:i] + value[i+1:]
	}
	amount, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return Asset{}, fmt.Errorf("invalid asset: %q: %w", s, err)
	}
	return Asset{Amount: amount, Precision: precision, Symbol: symbol}, nil
}

// String renders the asset back into the wire form.
func (a Asset) String() string {
	sign := ""
	amount := a.Amount
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	p := int(a.Precision)
	if len(digits) <= p {
		digits = strings.Repeat("0", p-len(digits)+1) + digits
	}
	if p > 0 {
		digits = digits[:len(digits)-p] + "." + digits[len(digits)-p:]
	}
	return sign + digits + " " + a.Symbol
}

// Float returns the amount as a float64. Convenience for display; do not use
// it for arithmetic that ends up back on chain.
func (a Asset) Float() float64 {
	scale := 1.0
	for i := uint8(0); i < a.Precision; i++ {
		scale *= 10
	}
	return float64(a.Amount) / scale
}

// UnmarshalJSON parses a quoted condenser_api asset string.
func (a *Asset) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid asset")
	}
	parsed, err := ParseAsset(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON renders the quoted wire form.
func (a Asset) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}
