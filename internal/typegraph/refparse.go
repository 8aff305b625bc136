package typegraph

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseRef parses a textual type reference as written in manifests:
//
//	io.Reader
//	List<Int>
//	Map<String, List<Int>>
//	io.Reader with io.Closeable
//
// "with" binds loosest, so A with B<C> parses as an intersection of A and
// B<C>. The parser reports plain errors; callers wrap them into diagnostics.
func ParseRef(src string) (TypeRef, error) {
	p := &refParser{src: src}
	ref, err := p.parseIntersection()
	if err != nil {
		return TypeRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeRef{}, fmt.Errorf("unexpected %q at offset %d", p.rest(), p.pos)
	}
	return ref, nil
}

type refParser struct {
	src string
	pos int
}

func (p *refParser) parseIntersection() (TypeRef, error) {
	first, err := p.parseSingle()
	if err != nil {
		return TypeRef{}, err
	}
	parts := []TypeRef{first}
	for p.eatKeyword("with") {
		next, err := p.parseSingle()
		if err != nil {
			return TypeRef{}, err
		}
		parts = append(parts, next)
	}
	if len(parts) == 1 {
		return first, nil
	}
	return TypeRef{Parts: parts}, nil
}

func (p *refParser) parseSingle() (TypeRef, error) {
	name, err := p.parseQualifiedName()
	if err != nil {
		return TypeRef{}, err
	}
	ref := TypeRef{Name: name}
	p.skipSpace()
	if p.peek() != '<' {
		return ref, nil
	}
	p.pos++ // consume '<'
	for {
		arg, err := p.parseIntersection()
		if err != nil {
			return TypeRef{}, err
		}
		ref.Args = append(ref.Args, arg)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return ref, nil
		default:
			return TypeRef{}, fmt.Errorf("expected ',' or '>' at offset %d, got %q", p.pos, p.rest())
		}
	}
}

func (p *refParser) parseQualifiedName() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '.' || c == '$' {
			p.pos++
			continue
		}
		break
	}
	name := p.src[start:p.pos]
	if name == "" {
		return "", fmt.Errorf("expected type name at offset %d, got %q", p.pos, p.rest())
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return "", fmt.Errorf("malformed qualified name %q", name)
	}
	return name, nil
}

// eatKeyword consumes the keyword if it appears next as a whole word.
func (p *refParser) eatKeyword(kw string) bool {
	p.skipSpace()
	end := p.pos + len(kw)
	if end > len(p.src) || p.src[p.pos:end] != kw {
		return false
	}
	if end < len(p.src) {
		c := rune(p.src[end])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			return false
		}
	}
	p.pos = end
	return true
}

func (p *refParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *refParser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *refParser) rest() string {
	r := p.src[p.pos:]
	if len(r) > 12 {
		r = r[:12] + "..."
	}
	return r
}
