// Package fop provides filter and order support for repository list queries.
package fop

import (
	"fmt"
	"strings"
)

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// By represents a field used to order by and direction.
type By struct {
	Field     string
	Direction string
}

// NewBy constructs a new By value with a field and direction.
func NewBy(field string, direction string) By {
	return By{
		Field:     field,
		Direction: direction,
	}
}

// ParseOrder parses an order string of the form "field,direction" against a
// set of allowed fields. An empty value returns the default order.
func ParseOrder(allowed map[string]string, value string, defaultOrder By) (By, error) {
	if value == "" {
		return defaultOrder, nil
	}

	orderParts := strings.Split(value, ",")

	field := strings.TrimSpace(orderParts[0])
	column, exists := allowed[field]
	if !exists {
		return By{}, fmt.Errorf("unknown order field: %s", field)
	}

	switch len(orderParts) {
	case 1:
		return NewBy(column, ASC), nil

	case 2:
		direction := strings.ToUpper(strings.TrimSpace(orderParts[1]))
		switch direction {
		case ASC, DESC:
			return NewBy(column, direction), nil
		}
		return By{}, fmt.Errorf("unknown order direction: %s", orderParts[1])

	default:
		return By{}, fmt.Errorf("invalid order value: %s", value)
	}
}
