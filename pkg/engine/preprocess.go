package engine

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites scene script source into something zygomys
// accepts:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     Keywords stay distinguishable from user variables of the same name
//     without registering them as globals.
//
//  2. Kebab-case to underscore: box-from-points -> box_from_points
//     zygomys reads a hyphen inside an identifier as subtraction.
//
//  3. Line comments: ; and ;; become //, the zygomys comment marker.
//
// String literals (double-quoted and backtick) pass through untouched.
func preprocessSource(source string) string {
	p := &preprocessor{src: []byte(source)}
	p.out = make([]byte, 0, len(source)+len(source)/4)
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == '"':
			p.quoted('"', true)
		case c == '`':
			p.quoted('`', false)
		case c == ';':
			p.comment()
		case c == ':' && p.peek(1) == '=':
			p.copy(2)
		case c == ':' && isLetter(p.peek(1)):
			p.keyword()
		case c == '-' && p.inIdentifier():
			p.out = append(p.out, '_')
			p.pos++
		default:
			p.copy(1)
		}
	}
	return string(p.out)
}

type preprocessor struct {
	src []byte
	out []byte
	pos int
}

// peek returns the byte n positions ahead, or 0 past the end.
func (p *preprocessor) peek(n int) byte {
	if p.pos+n < len(p.src) {
		return p.src[p.pos+n]
	}
	return 0
}

// copy moves n bytes from src to out.
func (p *preprocessor) copy(n int) {
	end := min(p.pos+n, len(p.src))
	p.out = append(p.out, p.src[p.pos:end]...)
	p.pos = end
}

// quoted copies a literal delimited by q, honouring backslash escapes when
// escapes is set.
func (p *preprocessor) quoted(q byte, escapes bool) {
	p.copy(1)
	for p.pos < len(p.src) && p.src[p.pos] != q {
		if escapes && p.src[p.pos] == '\\' && p.pos+1 < len(p.src) {
			p.copy(2)
			continue
		}
		p.copy(1)
	}
	p.copy(1)
}

// comment rewrites a run of semicolons as // and copies the rest of the line.
func (p *preprocessor) comment() {
	p.out = append(p.out, '/', '/')
	for p.pos < len(p.src) && p.src[p.pos] == ';' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] != '\n' {
		p.copy(1)
	}
}

// keyword emits :name as the string "__kw_name".
func (p *preprocessor) keyword() {
	start := p.pos + 1
	end := start
	for end < len(p.src) && isKWChar(p.src[end]) {
		end++
	}
	p.out = append(p.out, '"')
	p.out = append(p.out, kwPrefix...)
	p.out = append(p.out, p.src[start:end]...)
	p.out = append(p.out, '"')
	p.pos = end
}

// inIdentifier reports whether the hyphen at pos joins two identifier
// parts rather than acting as a minus sign.
func (p *preprocessor) inIdentifier() bool {
	return p.pos > 0 && isIdentChar(p.src[p.pos-1]) && isLetter(p.peek(1))
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
