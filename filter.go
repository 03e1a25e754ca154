package lakepath

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpEq   Operator = "eq"
	OpNe   Operator = "ne"
	OpLt   Operator = "lt"
	OpGt   Operator = "gt"
	OpLe   Operator = "le"
	OpGe   Operator = "ge"
	OpLike Operator = "like"
)

var filterExpression = regexp.MustCompile(`^(eq|ne|lt|gt|le|ge|like):(.+)$`)

// timeLayouts are tried in order when parsing a filter value for a time property.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Filter is a single property predicate requested by a client, for example
// ContentLength with the expression ge:100.
//
// Invalid filters are kept rather than dropped so that ErrorMessage can be
// reported back to the caller.
type Filter struct {
	PropertyName string       `json:"propertyName"`
	PropertyType PropertyType `json:"propertyType,omitempty"`
	Operator     Operator     `json:"operator,omitempty"`
	Value        string       `json:"value,omitempty"`
	IsValid      bool         `json:"isValid"`
	ErrorMessage string       `json:"errorMessage,omitempty"`

	match func(Item) bool
}

// NewFilter validates a filter expression of the form operator:value against
// the named Item property and compiles it. The property name is matched
// case-insensitively.
//
// The returned Filter is never partially valid: either IsValid is true and
// the filter can be applied, or ErrorMessage explains why it cannot.
func NewFilter(propertyName, expression string) Filter {
	f := Filter{PropertyName: propertyName}

	prop, ok := lookupProperty(propertyName)
	if !ok {
		return f.invalid(fmt.Sprintf("The filter column '%s' does not exist. Filter columns must be one of the following: %s.",
			orNull(propertyName), strings.Join(PropertyNames(), ", ")))
	}

	m := filterExpression.FindStringSubmatch(expression)
	if m == nil {
		return f.invalid(fmt.Sprintf("The filter string '%s' for column '%s' is not valid. It should match the format '%s'",
			orNull(expression), propertyName, filterExpression))
	}
	op, value := Operator(m[1]), m[2]

	if op == OpLike && prop.typ != TypeString {
		return f.invalid(fmt.Sprintf("The filter column '%s' is not a string, and cannot be use with the 'like' operator.", propertyName))
	}

	f.PropertyType = prop.typ
	f.Operator = op
	f.Value = value

	match, err := compileFilter(propertyName, prop, op, value)
	if err != nil {
		return f.invalid(err.Error())
	}

	f.IsValid = true
	f.match = match
	return f
}

// Matches reports whether the item satisfies the filter. Invalid filters
// match nothing.
func (f Filter) Matches(item Item) bool {
	if !f.IsValid || f.match == nil {
		return false
	}
	return f.match(item)
}

func (f Filter) invalid(msg string) Filter {
	slog.Warn("invalid filter", "property", f.PropertyName, "error", msg)
	f.IsValid = false
	f.ErrorMessage = msg
	f.match = nil
	return f
}

func orNull(s string) string {
	if s == "" {
		return "null"
	}
	return s
}

func compileFilter(name string, prop property, op Operator, raw string) (func(Item) bool, error) {
	if op == OpLike {
		re, err := regexp.Compile("(?i)" + strings.ReplaceAll(raw, "*", ".*"))
		if err != nil {
			return nil, fmt.Errorf("The filter '%s' cannot be applied to the property '%s' as it is not a valid pattern", raw, name)
		}
		return func(i Item) bool { return re.MatchString(prop.text(i)) }, nil
	}

	v, err := parseValue(prop.typ, raw)
	if err != nil {
		return nil, fmt.Errorf("The filter '%s' cannot be applied to the property '%s' as it cannot be cast to a '%s'", raw, name, prop.typ)
	}

	test := operatorTest(op)
	return func(i Item) bool { return test(prop.compareValue(i, v)) }, nil
}

func operatorTest(op Operator) func(int) bool {
	switch op {
	case OpNe:
		return func(c int) bool { return c != 0 }
	case OpLt:
		return func(c int) bool { return c < 0 }
	case OpGt:
		return func(c int) bool { return c > 0 }
	case OpLe:
		return func(c int) bool { return c <= 0 }
	case OpGe:
		return func(c int) bool { return c >= 0 }
	default:
		return func(c int) bool { return c == 0 }
	}
}

func parseValue(typ PropertyType, raw string) (any, error) {
	switch typ {
	case TypeString:
		return raw, nil
	case TypeBool:
		return strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
	case TypeInt64:
		return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	case TypeTime:
		return parseTime(strings.TrimSpace(raw))
	default:
		return nil, fmt.Errorf("unsupported property type %s", typ)
	}
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse time %q", raw)
}

// FilterErrors returns an error joining the messages of every invalid
// filter, or nil when all filters are valid.
func FilterErrors(filters []Filter) error {
	var errs []error
	for _, f := range filters {
		if !f.IsValid {
			errs = append(errs, errors.New(f.ErrorMessage))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidFilter, errors.Join(errs...))
}
