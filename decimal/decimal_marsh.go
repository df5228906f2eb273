// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import "fmt"

// MarshalText implements the encoding.TextMarshaler interface, used among
// others by log/slog text and JSON handlers. Only the value is marshaled, in
// full precision.
func (x *Decimal) MarshalText() ([]byte, error) {
	if x == nil {
		return []byte("<nil>"), nil
	}
	return x.Append(nil, 'g', -1), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The result
// is rounded to z's precision and rounding mode. A zero precision is changed
// to the number of digits in text, and at least DefaultDecimalPrec.
func (z *Decimal) UnmarshalText(text []byte) error {
	if _, _, err := z.Parse(string(text), 0); err != nil {
		return fmt.Errorf("decimal: cannot unmarshal %q: %w", text, err)
	}
	return nil
}
