// Package parser turns textual radical expressions into exact values.
//
// Grammar, in order of increasing precedence:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = { "-" } power
//	power   = primary [ "^" integer ]
//	primary = integer
//	        | "sqrt" "(" expr ")"
//	        | "root" "(" integer "," expr ")"
//	        | "(" expr ")"
//
// Whitespace between tokens is ignored. Integers are unbounded decimal
// literals. Exponents are capped by config.MaxExponent; root indices must
// be positive. Every syntactic failure is reported as an
// apperrors.ParseError carrying the byte offset of the offending token;
// mathematical failures (division by zero, sign queries the engine cannot
// answer) surface unchanged from the radical package.
package parser

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/goessl/sumofradicals/internal/config"
	apperrors "github.com/goessl/sumofradicals/internal/errors"
	"github.com/goessl/sumofradicals/internal/radical"
)

// Parse evaluates the expression src and returns its exact value.
func Parse(src string) (radical.Value, error) {
	if len(src) > config.MaxExpressionLength {
		return radical.Value{}, apperrors.ParseError{
			Pos:     config.MaxExpressionLength,
			Message: "expression too long",
		}
	}
	p := &parser{src: src}
	p.skipSpace()
	if p.eof() {
		return radical.Value{}, apperrors.ParseError{Pos: p.pos, Message: "empty expression"}
	}
	v, err := p.parseExpr()
	if err != nil {
		return radical.Value{}, err
	}
	p.skipSpace()
	if !p.eof() {
		return radical.Value{}, p.errorf("unexpected %q", p.rest(8))
	}
	return v, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// rest returns up to n bytes of remaining input, for error messages.
func (p *parser) rest(n int) string {
	end := p.pos + n
	if end > len(p.src) {
		end = len(p.src)
	}
	return p.src[p.pos:end]
}

func (p *parser) errorf(format string, args ...any) error {
	return apperrors.ParseError{Pos: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) parseExpr() (radical.Value, error) {
	v, err := p.parseTerm()
	if err != nil {
		return radical.Value{}, err
	}
	for {
		p.skipSpace()
		if p.eof() {
			return v, nil
		}
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return radical.Value{}, err
			}
			v = v.Add(rhs)
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return radical.Value{}, err
			}
			v = v.Sub(rhs)
		default:
			return v, nil
		}
	}
}

func (p *parser) parseTerm() (radical.Value, error) {
	v, err := p.parseUnary()
	if err != nil {
		return radical.Value{}, err
	}
	for {
		p.skipSpace()
		if p.eof() {
			return v, nil
		}
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return radical.Value{}, err
			}
			v = v.Mul(rhs)
		case '/':
			opPos := p.pos
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return radical.Value{}, err
			}
			q, err := v.Div(rhs)
			if err != nil {
				// keep the domain error but remember where it happened
				return radical.Value{}, apperrors.WrapError(err, "division at offset %d", opPos)
			}
			v = q
		default:
			return v, nil
		}
	}
}

func (p *parser) parseUnary() (radical.Value, error) {
	p.skipSpace()
	neg := false
	for !p.eof() && p.peek() == '-' {
		neg = !neg
		p.pos++
		p.skipSpace()
	}
	v, err := p.parsePower()
	if err != nil {
		return radical.Value{}, err
	}
	if neg {
		v = v.Neg()
	}
	return v, nil
}

func (p *parser) parsePower() (radical.Value, error) {
	v, err := p.parsePrimary()
	if err != nil {
		return radical.Value{}, err
	}
	p.skipSpace()
	if p.eof() || p.peek() != '^' {
		return v, nil
	}
	p.pos++
	p.skipSpace()
	expPos := p.pos
	e, err := p.parseNat()
	if err != nil {
		return radical.Value{}, err
	}
	if !e.IsUint64() || e.Uint64() > config.MaxExponent {
		p.pos = expPos
		return radical.Value{}, p.errorf("exponent exceeds limit %d", config.MaxExponent)
	}
	return v.Pow(uint(e.Uint64())), nil
}

func (p *parser) parsePrimary() (radical.Value, error) {
	p.skipSpace()
	if p.eof() {
		return radical.Value{}, p.errorf("unexpected end of expression")
	}
	switch c := p.peek(); {
	case c >= '0' && c <= '9':
		n, err := p.parseNat()
		if err != nil {
			return radical.Value{}, err
		}
		return radical.FromBigInt(n), nil
	case c == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return radical.Value{}, err
		}
		if err := p.expect(')'); err != nil {
			return radical.Value{}, err
		}
		return v, nil
	case p.hasWord("sqrt"):
		p.pos += len("sqrt")
		return p.parseRoot(2)
	case p.hasWord("root"):
		p.pos += len("root")
		return p.parseRoot(0)
	default:
		return radical.Value{}, p.errorf("unexpected %q", p.rest(8))
	}
}

// parseRoot parses the argument list of a sqrt or root call. index 0 means
// the index is read from the first argument.
func (p *parser) parseRoot(index int) (radical.Value, error) {
	if err := p.expect('('); err != nil {
		return radical.Value{}, err
	}
	if index == 0 {
		p.skipSpace()
		idxPos := p.pos
		n, err := p.parseNat()
		if err != nil {
			return radical.Value{}, err
		}
		if !n.IsInt64() || n.Int64() < 1 || n.Int64() > int64(config.MaxExponent) {
			p.pos = idxPos
			return radical.Value{}, p.errorf("root index out of range 1..%d", config.MaxExponent)
		}
		index = int(n.Int64())
		if err := p.expect(','); err != nil {
			return radical.Value{}, err
		}
	}
	argPos := p.pos
	arg, err := p.parseExpr()
	if err != nil {
		return radical.Value{}, err
	}
	if err := p.expect(')'); err != nil {
		return radical.Value{}, err
	}
	r, err := arg.BigInt()
	if err != nil || r.Sign() < 1 {
		p.pos = argPos
		return radical.Value{}, p.errorf("radicand must be a positive integer")
	}
	v, err := radical.New([]radical.Term{{Index: index, Radicand: r, Coeff: big.NewInt(1)}}, nil)
	if err != nil {
		p.pos = argPos
		return radical.Value{}, apperrors.ParseError{Pos: argPos, Message: err.Error()}
	}
	return v, nil
}

// parseNat parses an unsigned decimal integer literal.
func (p *parser) parseNat() (*big.Int, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if p.pos == start {
		return nil, p.errorf("expected a number, got %q", p.rest(8))
	}
	n, ok := new(big.Int).SetString(p.src[start:p.pos], 10)
	if !ok {
		p.pos = start
		return nil, p.errorf("invalid number")
	}
	return n, nil
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.eof() || p.peek() != c {
		return p.errorf("expected %q, got %q", string(c), p.rest(8))
	}
	p.pos++
	return nil
}

// hasWord reports whether the input at the cursor starts with the given
// lowercase keyword followed by a non-letter.
func (p *parser) hasWord(w string) bool {
	if !strings.HasPrefix(p.src[p.pos:], w) {
		return false
	}
	rest := p.src[p.pos+len(w):]
	if rest == "" {
		return true
	}
	c := rest[0]
	return !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z')
}
