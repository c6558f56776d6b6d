package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	gstrings "github.com/savsgio/gotils/strings"
)

const (
	uuidExpr = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`
	dateExpr = `\d{4}-\d{2}-\d{2}`

	defaultDateLayout = "2006-01-02"
)

var builtinModifiers = map[string]Modifier{
	"d":    {RegExp: repeat(`\d`), Formatter: toInt},
	"n":    {RegExp: repeat(`\d`)},
	"dIn":  {RegExp: integerSet, Formatter: toInt},
	"dNot": {RegExp: Static(`\d+`), Formatter: integerExcept},
	"in":   {RegExp: literalSet},
	"not":  {RegExp: notEmpty, Formatter: literalExcept},
	"l":    {RegExp: length},
	"r":    {RegExp: rawRegexp},
	"reg":  {RegExp: rawRegexp},
	"u":    {RegExp: Static(uuidExpr), Formatter: canonicalUUID},
	"uuid": {RegExp: Static(uuidExpr), Formatter: canonicalUUID},
	"w":    {RegExp: repeat(`\w`)},
	"wl":   {RegExp: repeat(`\w`), Formatter: mapCase(strings.ToLower)},
	"wr":   {RegExp: repeat(`\w`), Formatter: mapCase(strings.ToUpper)},
	"date": {RegExp: dateRegexp, Formatter: toTime},
}

// quantifier parses "n" or "min,max" arguments into a regexp repetition.
func quantifier(args []string) (string, error) {
	bounds := make([]int, len(args))

	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return "", fmt.Errorf("%w: %q is not a length", ErrInvalidArgument, arg)
		}

		bounds[i] = n
	}

	switch len(bounds) {
	case 0:
		return "+", nil
	case 1:
		if bounds[0] == 0 {
			return "", fmt.Errorf("%w: length must be positive", ErrInvalidArgument)
		}

		return "{" + strconv.Itoa(bounds[0]) + "}", nil
	case 2:
		if bounds[1] == 0 || bounds[0] > bounds[1] {
			return "", fmt.Errorf("%w: bad range %d,%d", ErrInvalidArgument, bounds[0], bounds[1])
		}

		return "{" + strconv.Itoa(bounds[0]) + "," + strconv.Itoa(bounds[1]) + "}", nil
	}

	return "", fmt.Errorf("%w: expected at most 2 arguments, got %d", ErrInvalidArgument, len(args))
}

func repeat(class string) func(args []string) (string, error) {
	return func(args []string) (string, error) {
		q, err := quantifier(args)
		if err != nil {
			return "", err
		}

		return class + q, nil
	}
}

func length(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}

	q, err := quantifier(args)
	if err != nil {
		return "", err
	}

	return "." + q, nil
}

func notEmpty(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: expected at least 1 argument", ErrInvalidArgument)
	}

	return "", nil
}

func alternation(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = regexp.QuoteMeta(v)
	}

	return strings.Join(quoted, "|")
}

func literalSet(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: expected at least 1 argument", ErrInvalidArgument)
	}

	return alternation(args), nil
}

func integerSet(args []string) (string, error) {
	if err := checkIntegers(args); err != nil {
		return "", err
	}

	return alternation(args), nil
}

func checkIntegers(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: expected at least 1 argument", ErrInvalidArgument)
	}

	for _, arg := range args {
		if _, err := strconv.Atoi(arg); err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidArgument, arg)
		}
	}

	return nil
}

func rawRegexp(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected 1 argument, got %d", ErrInvalidArgument, len(args))
	}

	if _, err := regexp.Compile(args[0]); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	return args[0], nil
}

func dateRegexp(args []string) (string, error) {
	switch len(args) {
	case 0:
		return dateExpr, nil
	case 1:
		return "", nil
	}

	return "", fmt.Errorf("%w: expected at most 1 argument, got %d", ErrInvalidArgument, len(args))
}

func parseInt(value string) (any, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, false
	}

	return n, true
}

func toInt([]string) (Formatter, error) {
	return parseInt, nil
}

func integerExcept(args []string) (Formatter, error) {
	if err := checkIntegers(args); err != nil {
		return nil, err
	}

	excluded := make([]int, len(args))
	for i, arg := range args {
		excluded[i], _ = strconv.Atoi(arg)
	}

	return func(value string) (any, bool) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, false
		}

		for _, x := range excluded {
			if n == x {
				return nil, false
			}
		}

		return n, true
	}, nil
}

func literalExcept(args []string) (Formatter, error) {
	return func(value string) (any, bool) {
		if gstrings.Include(args, value) {
			return nil, false
		}

		return value, true
	}, nil
}

func canonicalUUID([]string) (Formatter, error) {
	return func(value string) (any, bool) {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, false
		}

		return id.String(), true
	}, nil
}

func mapCase(fn func(string) string) func([]string) (Formatter, error) {
	return func([]string) (Formatter, error) {
		return func(value string) (any, bool) {
			return fn(value), true
		}, nil
	}
}

func toTime(args []string) (Formatter, error) {
	layout := defaultDateLayout
	if len(args) == 1 {
		layout = args[0]
	}

	return func(value string) (any, bool) {
		t, err := time.Parse(layout, value)
		if err != nil {
			return nil, false
		}

		return t, true
	}, nil
}
