package lakepath

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// PropertyType is the value type of a filterable Item property.
type PropertyType string

const (
	TypeString PropertyType = "string"
	TypeBool   PropertyType = "bool"
	TypeInt64  PropertyType = "int64"
	TypeTime   PropertyType = "time"
)

// property describes one Item field that filters and ordering can refer to.
type property struct {
	name         string
	typ          PropertyType
	text         func(Item) string
	compareValue func(Item, any) int
	compareItems func(a, b Item) int
}

func newProperty[T any](name string, typ PropertyType, get func(Item) T, compare func(a, b T) int) property {
	return property{
		name:         name,
		typ:          typ,
		text:         func(i Item) string { return fmt.Sprint(get(i)) },
		compareValue: func(i Item, v any) int { return compare(get(i), v.(T)) },
		compareItems: func(a, b Item) int { return compare(get(a), get(b)) },
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareTime(a, b time.Time) int { return a.Compare(b) }

var itemProperties = []property{
	newProperty("ContentLength", TypeInt64, func(i Item) int64 { return i.ContentLength }, cmp.Compare[int64]),
	newProperty("Directory", TypeString, func(i Item) string { return i.Directory }, strings.Compare),
	newProperty("FullPath", TypeString, Item.FullPath, strings.Compare),
	newProperty("IsDirectory", TypeBool, func(i Item) bool { return i.IsDirectory }, compareBool),
	newProperty("LastModified", TypeTime, func(i Item) time.Time { return i.LastModified }, compareTime),
	newProperty("Name", TypeString, func(i Item) string { return i.Name }, strings.Compare),
	newProperty("Url", TypeString, func(i Item) string { return i.URL }, strings.Compare),
}

func lookupProperty(name string) (property, bool) {
	name = strings.TrimSpace(name)
	for _, p := range itemProperties {
		if strings.EqualFold(p.name, name) {
			return p, true
		}
	}
	return property{}, false
}

// PropertyNames returns the names of the filterable Item properties, sorted.
func PropertyNames() []string {
	names := make([]string, len(itemProperties))
	for i, p := range itemProperties {
		names[i] = p.name
	}
	slices.Sort(names)
	return names
}
