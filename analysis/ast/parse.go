package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/crow-cp/crow/analysis/bounds"
)

// ErrParse is returned for malformed expression text.
var ErrParse = errors.New("parse error")

type token struct {
	text string
	pos  int
}

func tokenize(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == ';':
			for i < len(rs) && rs[i] != '\n' {
				i++
			}
		case strings.ContainsRune("()[]", r):
			toks = append(toks, token{string(r), i})
			i++
		case r == '{':
			j := i
			for j < len(rs) && rs[j] != '}' {
				j++
			}
			if j == len(rs) {
				return nil, fmt.Errorf("%w: unterminated set at %d", ErrParse, i)
			}
			toks = append(toks, token{string(rs[i : j+1]), i})
			i = j + 1
		default:
			j := i
			for j < len(rs) && !unicode.IsSpace(rs[j]) && !strings.ContainsRune("()[]{};", rs[j]) {
				j++
			}
			toks = append(toks, token{string(rs[i:j]), i})
			i = j
		}
	}
	return toks, nil
}

type parser struct {
	toks    []token
	pos     int
	symbols SymbolTable
}

// Parse reads an expression in the textual form produced by String.
// Identifiers declared boolean in symbols become boolean identifiers;
// symbols may be nil.
func Parse(src string, symbols SymbolTable) (Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, symbols: symbols}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, p.errorf("trailing input %q", p.toks[p.pos].text)
	}
	return n, nil
}

// MustParse is Parse for inputs known to be well formed.
func MustParse(src string, symbols SymbolTable) Node {
	n, err := Parse(src, symbols)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *parser) errorf(format string, args ...interface{}) error {
	at := "end of input"
	if p.pos < len(p.toks) {
		at = fmt.Sprintf("offset %d", p.toks[p.pos].pos)
	}
	return fmt.Errorf("%w at %s: %s", ErrParse, at, fmt.Sprintf(format, args...))
}

func (p *parser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos].text
	}
	return ""
}

func (p *parser) next() (string, error) {
	if p.pos >= len(p.toks) {
		return "", p.errorf("unexpected end of input")
	}
	p.pos++
	return p.toks[p.pos-1].text, nil
}

func (p *parser) expect(s string) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t != s {
		p.pos--
		return p.errorf("expected %q, found %q", s, t)
	}
	return nil
}

func (p *parser) expr() (Node, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch {
	case t == "(":
		return p.compound()
	case t == "[":
		elems, err := p.list("]")
		if err != nil {
			return nil, err
		}
		return NewMatrix(elems...), nil
	case strings.HasPrefix(t, "{"):
		s, err := bounds.ParseSet(t)
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		return Set(s), nil
	case strings.HasPrefix(t, "@"):
		return NewTableRef(t[1:]), nil
	case t == "true" || t == "false":
		return Bool(t == "true"), nil
	case t == ")" || t == "]":
		p.pos--
		return nil, p.errorf("unexpected %q", t)
	}
	if v, err := strconv.ParseInt(t, 10, 64); err == nil {
		return Int(v), nil
	}
	if p.symbols != nil {
		if decl, ok := p.symbols.Lookup(t); ok && decl.Boolean {
			return BoolIdent(t), nil
		}
	}
	return Ident(t), nil
}

// list reads expressions up to and including the closing token.
func (p *parser) list(end string) ([]Node, error) {
	var res []Node
	for p.peek() != end {
		if p.pos >= len(p.toks) {
			return nil, p.errorf("missing %q", end)
		}
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	p.pos++
	return res, nil
}

func (p *parser) ints() ([]int64, error) {
	if err := p.expect("["); err != nil {
		return nil, err
	}
	elems, err := p.list("]")
	if err != nil {
		return nil, err
	}
	res := make([]int64, len(elems))
	for i, e := range elems {
		c, ok := e.(*IntConst)
		if !ok {
			return nil, p.errorf("expected an integer, found %s", e)
		}
		res[i] = c.Value
	}
	return res, nil
}

func (p *parser) matrix() (*Matrix, error) {
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	mat, ok := n.(*Matrix)
	if !ok {
		return nil, p.errorf("expected a matrix, found %s", n)
	}
	return mat, nil
}

func (p *parser) quantifier(op string) (Node, error) {
	v, err := p.next()
	if err != nil {
		return nil, err
	}
	d, err := p.next()
	if err != nil {
		return nil, err
	}
	dom, err := bounds.ParseSet(d)
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	switch op {
	case "forall":
		return NewForall(v, dom, body), nil
	case "exists":
		return NewExists(v, dom, body), nil
	}
	return NewQuantSum(v, dom, body), nil
}

func (p *parser) compound() (n Node, err error) {
	op, err := p.next()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err == nil {
			err = p.expect(")")
		}
	}()

	switch op {
	case "sum":
		terms, err := p.matrix()
		if err != nil {
			return nil, err
		}
		ws, err := p.ints()
		if err != nil {
			return nil, err
		}
		if len(ws) != terms.NumChildren() {
			return nil, p.errorf("sum with %d terms and %d weights", terms.NumChildren(), len(ws))
		}
		return NewSum(terms.Children(), ws), nil
	case "table", "negtable":
		vars, err := p.matrix()
		if err != nil {
			return nil, err
		}
		tab, err := p.expr()
		if err != nil {
			return nil, err
		}
		return newTable(op == "negtable", vars, tab), nil
	case "tuples":
		var rows [][]int64
		for p.peek() == "[" {
			row, err := p.ints()
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return NewTableLiteral(rows), nil
	case "gcc":
		vars, err := p.matrix()
		if err != nil {
			return nil, err
		}
		vals, err := p.ints()
		if err != nil {
			return nil, err
		}
		cards, err := p.matrix()
		if err != nil {
			return nil, err
		}
		return NewGlobalCard(vars, vals, cards), nil
	case "forall", "exists", "qsum":
		return p.quantifier(op)
	}

	var args []Node
	for p.peek() != ")" {
		a, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	arity := func(k int) error {
		if len(args) != k {
			return p.errorf("%s expects %d operands, found %d", op, k, len(args))
		}
		return nil
	}

	switch op {
	case "+":
		return Plus(args...), nil
	case "and":
		return NewAnd(args...), nil
	case "or":
		return NewOr(args...), nil
	case "xor":
		return NewXor(args...), nil
	case "-":
		if len(args) == 1 {
			return NewUnaryMinus(args[0]), nil
		}
		if err := arity(2); err != nil {
			return nil, err
		}
		return Minus(args[0], args[1]), nil
	case "abs", "not":
		if err := arity(1); err != nil {
			return nil, err
		}
		if op == "abs" {
			return NewAbs(args[0]), nil
		}
		return NewNegate(args[0]), nil
	case "alldiff":
		if err := arity(1); err != nil {
			return nil, err
		}
		return NewAllDifferent(args[0]), nil
	}

	if err := arity(2); err != nil {
		return nil, err
	}
	a, b := args[0], args[1]
	switch op {
	case "*":
		return NewTimes(a, b), nil
	case "div":
		return NewDiv(a, b), nil
	case "mod":
		return NewMod(a, b), nil
	case "=":
		return NewEquals(a, b), nil
	case "!=":
		return NewAllDifferent(NewMatrix(a, b)), nil
	case "<=":
		return NewLessEqual(a, b), nil
	case "<":
		return NewLess(a, b), nil
	case ">=":
		return NewLessEqual(b, a), nil
	case ">":
		return NewLess(b, a), nil
	case "->":
		return NewImplies(a, b), nil
	case "<->":
		return NewIff(a, b), nil
	case "in":
		s, ok := b.(*SetConst)
		if !ok {
			return nil, p.errorf("in expects a constant set, found %s", b)
		}
		return NewInSet(a, s), nil
	}
	return nil, p.errorf("unknown operator %q", op)
}
