package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// contentExpr is a compiled content expression such as "paragraph block*"
// or "(table_cell | table_header)+". Child sequences are encoded as one
// token per node type and matched against an anchored regular expression.
type contentExpr struct {
	source  string
	re      *regexp.Regexp
	members []*NodeType
}

func (c *contentExpr) empty() bool {
	return len(c.members) == 0
}

// inline reports whether the expression admits inline nodes.
func (c *contentExpr) inline() bool {
	for _, t := range c.members {
		if t.Inline {
			return true
		}
	}
	return false
}

func (c *contentExpr) matches(kinds []*NodeType) bool {
	if c.empty() {
		return len(kinds) == 0
	}
	var sb strings.Builder
	for _, t := range kinds {
		sb.WriteString(typeToken(t))
	}
	return c.re.MatchString(sb.String())
}

func typeToken(t *NodeType) string {
	return "<" + strconv.Itoa(t.index) + ">"
}

// exprParser is a recursive-descent parser over content expression tokens.
type exprParser struct {
	schema  *Schema
	source  string
	tokens  []string
	pos     int
	members map[*NodeType]bool
	order   []*NodeType
}

func compileContent(schema *Schema, source string) (*contentExpr, error) {
	p := &exprParser{schema: schema, source: source, tokens: tokenizeExpr(source), members: map[*NodeType]bool{}}
	if len(p.tokens) == 0 {
		return &contentExpr{source: source}, nil
	}
	pattern, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, p.errorf("unexpected %q", p.tokens[p.pos])
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	return &contentExpr{source: source, re: re, members: p.order}, nil
}

func tokenizeExpr(source string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}
	for _, r := range source {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			word.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return tokens
}

func (p *exprParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: content expression %q: %s", ErrInvalidSchema, p.source, fmt.Sprintf(format, args...))
}

func (p *exprParser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *exprParser) parseExpr() (string, error) {
	var alts []string
	for {
		seq, err := p.parseSeq()
		if err != nil {
			return "", err
		}
		alts = append(alts, seq)
		if p.peek() != "|" {
			break
		}
		p.pos++
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return "(?:" + strings.Join(alts, "|") + ")", nil
}

func (p *exprParser) parseSeq() (string, error) {
	var sb strings.Builder
	for tok := p.peek(); tok != "" && tok != ")" && tok != "|"; tok = p.peek() {
		atom, err := p.parseAtom()
		if err != nil {
			return "", err
		}
		sb.WriteString(atom)
		switch q := p.peek(); q {
		case "*", "+", "?":
			sb.WriteString(q)
			p.pos++
		}
	}
	if sb.Len() == 0 {
		return "", p.errorf("empty sequence")
	}
	return sb.String(), nil
}

func (p *exprParser) parseAtom() (string, error) {
	tok := p.peek()
	p.pos++
	if tok == "(" {
		inner, err := p.parseExpr()
		if err != nil {
			return "", err
		}
		if p.peek() != ")" {
			return "", p.errorf("missing closing paren")
		}
		p.pos++
		return "(?:" + inner + ")", nil
	}
	types := p.schema.resolveName(tok)
	if len(types) == 0 {
		return "", p.errorf("no node type or group %q", tok)
	}
	alts := make([]string, len(types))
	for i, t := range types {
		alts[i] = typeToken(t)
		if !p.members[t] {
			p.members[t] = true
			p.order = append(p.order, t)
		}
	}
	return "(?:" + strings.Join(alts, "|") + ")", nil
}
