package segment

import "strings"

// lexer is a byte-indexed scanner over one segment template. Its state is
// the current position, whether it is inside a '{...}' group, and whether
// that group already holds its parameter name.
type lexer struct {
	src    string
	pos    int
	tokens []Token

	inGroup    bool
	groupPos   int
	groupNamed bool

	lit    strings.Builder
	litPos int
}

// Lex splits a segment template into tokens. The template is the text
// between two '/' of a pattern path.
func Lex(src string) ([]Token, error) {
	l := &lexer{
		src:    src,
		tokens: make([]Token, 0, 4),
		litPos: -1,
	}

	if err := l.run(); err != nil {
		return nil, err
	}

	return l.tokens, nil
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch c {
		case '\\':
			if l.pos+1 >= len(l.src) {
				return l.errorf(l.pos, ErrTrailingEscape, "")
			}

			l.literal(l.src[l.pos+1])
			l.pos += 2

		case ':':
			l.flush()

			if err := l.name(); err != nil {
				return err
			}

		case '{':
			if l.inGroup {
				return l.errorf(l.pos, ErrNestedGroup, "")
			}

			l.flush()
			l.emit(Token{Kind: KindGroupStart, Pos: l.pos})

			l.inGroup = true
			l.groupPos = l.pos
			l.groupNamed = false
			l.pos++

		case '}':
			if !l.inGroup {
				return l.errorf(l.pos, ErrUnexpectedChar, "}")
			}

			if !l.groupNamed {
				return l.errorf(l.groupPos, ErrEmptyGroup, "")
			}

			l.flush()
			l.emit(Token{Kind: KindGroupEnd, Pos: l.pos})

			l.inGroup = false
			l.pos++

		case '?', '(', ')', ',':
			return l.errorf(l.pos, ErrUnexpectedChar, string(c))

		default:
			l.literal(c)
			l.pos++
		}
	}

	if l.inGroup {
		return l.errorf(l.groupPos, ErrUnterminatedGroup, "")
	}

	l.flush()

	return nil
}

// name lexes ':name', an optional '?' and a following modifier chain.
func (l *lexer) name() error {
	start := l.pos
	l.pos++

	ident := l.ident()
	if ident == "" {
		return l.errorf(start, ErrEmptyName, "")
	}

	if l.inGroup {
		if l.groupNamed {
			return l.errorf(start, ErrGroupNames, ident)
		}

		l.groupNamed = true
	}

	tok := Token{Kind: KindName, Value: ident, Pos: start}
	if l.pos < len(l.src) && l.src[l.pos] == '?' {
		tok.Optional = true
		l.pos++
	}

	l.emit(tok)

	for l.pos < len(l.src) && l.src[l.pos] == '|' {
		if err := l.modifier(); err != nil {
			return err
		}
	}

	return nil
}

// modifier lexes '|name' and an optional '(arg,...)' list.
func (l *lexer) modifier() error {
	start := l.pos
	l.pos++

	ident := l.ident()
	if ident == "" {
		return l.errorf(start, ErrEmptyModifier, "")
	}

	l.emit(Token{Kind: KindModifier, Value: ident, Pos: start})

	if l.pos < len(l.src) && l.src[l.pos] == '(' {
		return l.arguments()
	}

	return nil
}

// arguments lexes a modifier argument list. Arguments are verbatim up to the
// next unescaped ',' or ')'. An empty list yields no argument tokens.
func (l *lexer) arguments() error {
	open := l.pos
	l.pos++

	var (
		arg    strings.Builder
		argPos = l.pos
		seen   = false
	)

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch c {
		case '\\':
			if l.pos+1 >= len(l.src) {
				return l.errorf(l.pos, ErrTrailingEscape, "")
			}

			arg.WriteByte(l.src[l.pos+1])
			l.pos += 2

		case ',':
			if arg.Len() == 0 {
				return l.errorf(l.pos, ErrEmptyArgument, "")
			}

			l.emit(Token{Kind: KindModifierArg, Value: arg.String(), Pos: argPos})
			arg.Reset()
			seen = true
			l.pos++
			argPos = l.pos

		case ')':
			if arg.Len() > 0 {
				l.emit(Token{Kind: KindModifierArg, Value: arg.String(), Pos: argPos})
			} else if seen {
				return l.errorf(l.pos, ErrEmptyArgument, "")
			}

			l.emit(Token{Kind: KindModifierEnd, Pos: l.pos})
			l.pos++

			return nil

		default:
			arg.WriteByte(c)
			l.pos++
		}
	}

	return l.errorf(open, ErrUnterminatedArguments, "")
}

func (l *lexer) ident() string {
	start := l.pos
	for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
		l.pos++
	}

	return l.src[start:l.pos]
}

func (l *lexer) literal(c byte) {
	if l.litPos < 0 {
		l.litPos = l.pos
	}

	l.lit.WriteByte(c)
}

// flush emits the pending literal text, if any.
func (l *lexer) flush() {
	if l.litPos < 0 {
		return
	}

	l.emit(Token{Kind: KindChar, Value: l.lit.String(), Pos: l.litPos})
	l.lit.Reset()
	l.litPos = -1
}

func (l *lexer) emit(t Token) {
	l.tokens = append(l.tokens, t)
}

func (l *lexer) errorf(pos int, err error, detail string) error {
	return &Error{Segment: l.src, Pos: pos, Detail: detail, Err: err}
}
