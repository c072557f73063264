package radical

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// superscripts maps decimal digits to their Unicode superscript forms
// for rendering root indices above the radical sign.
var superscripts = [...]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

// superscript renders a positive int with superscript digits.
func superscript(n int) string {
	if n == 0 {
		return string(superscripts[0])
	}
	var digits []rune
	for n > 0 {
		digits = append([]rune{superscripts[n%10]}, digits...)
		n /= 10
	}
	return string(digits)
}

// String renders the value in compact Unicode form, e.g.
// "(14+55√3)/77", "-2³√2" or "0". The rational part prints as a bare
// integer, square roots as "√r" and higher roots with a superscript
// index. A numerator of more than one term is parenthesized when a
// denominator follows.
func (x Value) String() string {
	if x.IsZero() {
		return "0"
	}
	var b strings.Builder
	for i, t := range x.terms {
		c := t.coeff
		if c.Sign() < 0 {
			b.WriteByte('-')
			c = new(big.Int).Neg(c)
		} else if i > 0 {
			b.WriteByte('+')
		}
		b.WriteString(c.String())
		if t.index == 1 {
			continue
		}
		if t.index > 2 {
			b.WriteString(superscript(t.index))
		}
		b.WriteRune('√')
		b.WriteString(t.radicand.String())
	}
	num := b.String()
	if x.denom().Cmp(intOne) == 0 {
		return num
	}
	if len(x.terms) > 1 {
		num = "(" + num + ")"
	}
	return num + "/" + x.den.String()
}

// Latex renders the value as a LaTeX fraction, e.g.
// "\frac{+5\sqrt{3}}{7}". Every coefficient carries an explicit sign,
// matching the usual sum notation.
func (x Value) Latex() string {
	var b strings.Builder
	b.WriteString(`\frac{`)
	if x.IsZero() {
		b.WriteByte('0')
	}
	for _, t := range x.terms {
		if t.coeff.Sign() >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(t.coeff.String())
		switch {
		case t.index == 1:
		case t.index == 2:
			b.WriteString(`\sqrt{` + t.radicand.String() + `}`)
		default:
			b.WriteString(`\sqrt[` + strconv.Itoa(t.index) + `]{` + t.radicand.String() + `}`)
		}
	}
	b.WriteString(`}{` + x.denom().String() + `}`)
	return b.String()
}

// Float64 returns a best-effort floating-point approximation of
// Σ vᵢ·rᵢ^(1/nᵢ) / d. Large coefficients or radicands can overflow to
// ±Inf. The approximation is never used internally for
// exactness-sensitive decisions; Sign and Compare exist for those.
func (x Value) Float64() float64 {
	var sum float64
	for _, t := range x.terms {
		c, _ := new(big.Float).SetInt(t.coeff).Float64()
		r, _ := new(big.Float).SetInt(t.radicand).Float64()
		var root float64
		switch t.index {
		case 1:
			root = r
		case 2:
			root = math.Sqrt(r)
		default:
			root = math.Pow(r, 1/float64(t.index))
		}
		sum += c * root
	}
	d, _ := new(big.Float).SetInt(x.denom()).Float64()
	return sum / d
}
