package segment

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	gstrings "github.com/savsgio/gotils/strings"
)

// Builder turns segment templates into Segments. One Builder is used per
// pattern path so parameter names are checked for duplicates path-wide.
type Builder struct {
	modifiers Lookup
	keys      []string
}

// NewBuilder returns a Builder resolving modifiers through modifiers.
func NewBuilder(modifiers Lookup) *Builder {
	return &Builder{
		modifiers: modifiers,
		keys:      make([]string, 0, 4),
	}
}

// Keys returns every parameter name seen so far, in order of appearance.
func (b *Builder) Keys() []string {
	return b.keys
}

// Build compiles one segment template.
func (b *Builder) Build(src string) (Segment, error) {
	if src == WildcardKey {
		if err := b.addKey(src, 0, src); err != nil {
			return nil, err
		}

		return &List{}, nil
	}

	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	switch {
	case len(tokens) == 0:
		return &Plain{}, nil

	case len(tokens) == 1 && tokens[0].Kind == KindChar:
		return &Plain{Literal: tokens[0].Value}, nil

	case len(tokens) == 1 && tokens[0].Kind == KindName:
		t := tokens[0]
		if err := b.addKey(src, t.Pos, t.Value); err != nil {
			return nil, err
		}

		return &Value{Name: t.Value, Required: !t.Optional}, nil
	}

	entities, err := b.entities(src, tokens)
	if err != nil {
		return nil, err
	}

	if len(entities) == 1 {
		if c := entities[0].capture; c != nil && c.expr == DefaultCapture && c.Prefix == "" && c.Suffix == "" {
			return &Value{Name: c.Name, Required: c.Required, Formatter: c.Formatter}, nil
		}
	}

	return b.values(src, entities)
}

// entity is an Entity during construction, carrying the capture expression.
type entity struct {
	literal string
	capture *pendingCapture
}

type pendingCapture struct {
	Capture
	expr string
}

// parser walks the token stream of one segment.
type parser struct {
	src    string
	tokens []Token
	i      int
}

func (p *parser) peek() (Token, bool) {
	if p.i >= len(p.tokens) {
		return Token{}, false
	}

	return p.tokens[p.i], true
}

func (p *parser) next() Token {
	t := p.tokens[p.i]
	p.i++

	return t
}

func (p *parser) is(k Kind) bool {
	t, ok := p.peek()
	return ok && t.Kind == k
}

func (p *parser) unexpected() error {
	t, ok := p.peek()
	if !ok {
		return &Error{Segment: p.src, Pos: len(p.src), Err: ErrUnterminatedGroup}
	}

	return &Error{Segment: p.src, Pos: t.Pos, Detail: t.Kind.String(), Err: ErrUnexpectedChar}
}

func (b *Builder) entities(src string, tokens []Token) ([]entity, error) {
	p := &parser{src: src, tokens: tokens}
	entities := make([]entity, 0, len(tokens))

	for {
		t, ok := p.peek()
		if !ok {
			return entities, nil
		}

		switch t.Kind {
		case KindChar:
			p.next()
			entities = append(entities, entity{literal: t.Value})

		case KindName:
			c, err := b.capture(p)
			if err != nil {
				return nil, err
			}

			entities = append(entities, entity{capture: c})

		case KindGroupStart:
			p.next()

			prefix := ""
			if p.is(KindChar) {
				prefix = p.next().Value
			}

			if !p.is(KindName) {
				return nil, p.unexpected()
			}

			c, err := b.capture(p)
			if err != nil {
				return nil, err
			}

			c.Prefix = prefix
			if p.is(KindChar) {
				c.Suffix = p.next().Value
			}

			if !p.is(KindGroupEnd) {
				return nil, p.unexpected()
			}

			p.next()

			entities = append(entities, entity{capture: c})

		default:
			return nil, p.unexpected()
		}
	}
}

// capture consumes a NAME token and its modifier chain.
func (b *Builder) capture(p *parser) (*pendingCapture, error) {
	t := p.next()
	if err := b.addKey(p.src, t.Pos, t.Value); err != nil {
		return nil, err
	}

	c := &pendingCapture{
		Capture: Capture{Name: t.Value, Required: !t.Optional},
	}

	var formatters []Formatter

	for p.is(KindModifier) {
		mt := p.next()

		var args []string
		for p.is(KindModifierArg) {
			args = append(args, p.next().Value)
		}

		if p.is(KindModifierEnd) {
			p.next()
		}

		m, ok := b.lookup(mt.Value)
		if !ok {
			return nil, &Error{Segment: p.src, Pos: mt.Pos, Detail: mt.Value, Err: ErrUnknownModifier}
		}

		if m.RegExp != nil {
			expr, err := m.RegExp(args)
			if err != nil {
				return nil, &Error{Segment: p.src, Pos: mt.Pos, Detail: mt.Value, Err: wrapArgument(err)}
			}

			switch {
			case expr == "":
			case c.expr == "":
				c.expr = expr
			default:
				// Only the first expression shapes the capture. Later ones
				// restrict the value at its position in the chain.
				re, err := regexp.Compile("^(?:" + expr + ")$")
				if err != nil {
					return nil, &Error{Segment: p.src, Pos: mt.Pos, Detail: err.Error(), Err: ErrInvalidRegexp}
				}

				formatters = append(formatters, restrict(re))
			}
		}

		if m.Formatter != nil {
			f, err := m.Formatter(args)
			if err != nil {
				return nil, &Error{Segment: p.src, Pos: mt.Pos, Detail: mt.Value, Err: wrapArgument(err)}
			}

			if f != nil {
				formatters = append(formatters, f)
			}
		}
	}

	if c.expr == "" {
		c.expr = DefaultCapture
	}

	c.Formatter = chain(formatters)

	return c, nil
}

func (b *Builder) lookup(name string) (Modifier, bool) {
	if b.modifiers == nil {
		return Modifier{}, false
	}

	return b.modifiers.Modifier(name)
}

// values assembles the anchored expression of a Values segment. Every capture
// is a named group so modifier expressions may hold groups of their own.
func (b *Builder) values(src string, entities []entity) (*Values, error) {
	var expr strings.Builder

	s := &Values{
		Entities: make([]Entity, 0, len(entities)),
		optional: true,
	}

	groups := make([]string, 0, len(entities))

	expr.WriteByte('^')

	for _, e := range entities {
		if e.capture == nil {
			expr.WriteString(regexp.QuoteMeta(e.literal))
			s.Entities = append(s.Entities, Entity{Literal: e.literal})

			continue
		}

		c := e.capture
		group := "p" + strconv.Itoa(len(groups))
		groups = append(groups, group)

		if c.Required {
			s.optional = false
		} else {
			expr.WriteString("(?:")
		}

		expr.WriteString(regexp.QuoteMeta(c.Prefix))
		expr.WriteString("(?P<")
		expr.WriteString(group)
		expr.WriteByte('>')
		expr.WriteString(c.expr)
		expr.WriteByte(')')
		expr.WriteString(regexp.QuoteMeta(c.Suffix))

		if !c.Required {
			expr.WriteString(")?")
		}

		capture := c.Capture
		s.Entities = append(s.Entities, Entity{Capture: &capture})
	}

	expr.WriteByte('$')

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, &Error{Segment: src, Detail: err.Error(), Err: ErrInvalidRegexp}
	}

	s.Regexp = re

	n := 0
	for _, e := range s.Entities {
		if e.Capture != nil {
			e.Capture.group = re.SubexpIndex(groups[n])
			n++
		}
	}

	return s, nil
}

func (b *Builder) addKey(src string, pos int, name string) error {
	if gstrings.Include(b.keys, name) {
		return &Error{Segment: src, Pos: pos, Detail: name, Err: ErrDuplicateKey}
	}

	b.keys = append(b.keys, name)

	return nil
}

// wrapArgument makes modifier argument failures match ErrInvalidArgument.
func wrapArgument(err error) error {
	if errors.Is(err, ErrInvalidArgument) {
		return err
	}

	return &argumentError{err: err}
}

type argumentError struct {
	err error
}

func (e *argumentError) Error() string {
	return ErrInvalidArgument.Error() + ": " + e.err.Error()
}

func (e *argumentError) Unwrap() []error {
	return []error{ErrInvalidArgument, e.err}
}
