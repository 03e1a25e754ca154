package lakepath

import (
	"fmt"
	"slices"
	"strings"
)

// ApplyQuery filters, orders and limits items and returns a new slice.
//
// Valid filters are combined with AND. The order by column is matched
// case-insensitively against the Item properties and the sort is stable, so
// equal items keep their listing order. A limit is only applied when it is
// positive and smaller than the number of items left.
//
// When any filter is invalid, ApplyQuery still returns the items selected by
// the valid filters together with an error wrapping ErrInvalidFilter; callers
// must treat that as a failed request.
func ApplyQuery(items []Item, filters []Filter, orderBy string, orderByDesc bool, limit int) ([]Item, error) {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if matchesAll(item, filters) {
			result = append(result, item)
		}
	}

	if column := strings.TrimSpace(orderBy); column != "" {
		prop, ok := lookupProperty(column)
		if !ok {
			return nil, fmt.Errorf("apply query: %w: the order by column '%s' does not exist. Order by columns must be one of the following: %s",
				ErrInvalidInput, column, strings.Join(PropertyNames(), ", "))
		}
		slices.SortStableFunc(result, func(a, b Item) int {
			if orderByDesc {
				return prop.compareItems(b, a)
			}
			return prop.compareItems(a, b)
		})
	}

	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}

	if err := FilterErrors(filters); err != nil {
		return result, fmt.Errorf("apply query: %w", err)
	}

	return result, nil
}

func matchesAll(item Item, filters []Filter) bool {
	for _, f := range filters {
		if f.IsValid && !f.Matches(item) {
			return false
		}
	}
	return true
}
