package basic

import (
	"github.com/shopspring/decimal"
)

// decimalValue is the exact fixed-point Value used for DECIMAL/NUMERIC
// columns. Unlike basicValue's float64 helpers, it never loses precision
// converting to/from its on-disk representation, so undo before-images
// and dtuple conversion round-trip the stored digits exactly.
type decimalValue struct {
	d decimal.Decimal
}

// NewDecimalValue parses a DECIMAL column's textual representation (the
// form it takes in an undo record's before-image and in a dtuple field)
// into an exact value.
func NewDecimalValue(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &decimalValue{d: d}, nil
}

// NewDecimalValueFromInt builds an exact decimal value with no fractional
// part, for callers constructing a DECIMAL(n,0) column value directly.
func NewDecimalValueFromInt(v int64) Value {
	return &decimalValue{d: decimal.NewFromInt(v)}
}

func (v *decimalValue) Type() ValueType {
	return ValueTypeDecimal
}

func (v *decimalValue) Compare(other Value) int {
	if o, ok := other.(*decimalValue); ok {
		return v.d.Cmp(o.d)
	}
	// fall back to a string compare against a non-decimal Value so
	// DECIMAL columns can still be ordered against an untyped basicValue
	if v.ToString() < other.ToString() {
		return -1
	} else if v.ToString() > other.ToString() {
		return 1
	}
	return 0
}

func (v *decimalValue) Raw() interface{} {
	return v.d
}

func (v *decimalValue) ToString() string {
	return v.d.String()
}

func (v *decimalValue) Bytes() []byte {
	// Bytes is the exact decimal string (trailing zeros trimmed), not a
	// binary encoding. Bytewise order of these strings does not follow
	// numeric order ("10" sorts before "9"); Compare orders numerically.
	return []byte(v.d.String())
}

func (v *decimalValue) IsNull() bool {
	return false
}

func (v *decimalValue) Int() int64 {
	return v.d.IntPart()
}

func (v *decimalValue) Float64() float64 {
	f, _ := v.d.Float64()
	return f
}

func (v *decimalValue) String() string {
	return v.d.String()
}

func (v *decimalValue) Time() interface{} {
	return nil
}

func (v *decimalValue) Bool() bool {
	return !v.d.IsZero()
}

func (v *decimalValue) LessOrEqual() (interface{}, interface{}) {
	return v.Bytes(), ValueTypeDecimal
}
