package engine

import (
	"errors"
	"fmt"
	"strings"

	"salesanalyzer/internal/models"
)

// ErrRoleUnresolved is returned when no header matches a required role.
var ErrRoleUnresolved = errors.New("no column matches role")

// RequiredColumns are the literal header names the gate checks for.
var RequiredColumns = []string{"date", "product", "amount"}

var (
	dateKeywords    = []string{"date"}
	productKeywords = []string{"product", "item"}
	amountKeywords  = []string{"amount", "sales", "revenue"}
)

// MissingColumns returns the required names absent from columns, compared
// case-insensitively and in RequiredColumns order.
func MissingColumns(columns []string) []string {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[strings.ToLower(c)] = struct{}{}
	}
	var missing []string
	for _, req := range RequiredColumns {
		if _, ok := present[req]; !ok {
			missing = append(missing, req)
		}
	}
	return missing
}

// ResolveRoles assigns each role the first column whose lowercased name
// contains one of the role's keywords.
//
// This is a substring search and deliberately disagrees with MissingColumns:
// "item" fills the product role but does not pass the gate, and a column
// such as "sales_rep" placed before "amount" captures the amount role.
func ResolveRoles(columns []string) models.ColumnRoles {
	return models.ColumnRoles{
		Date:    firstMatch(columns, dateKeywords),
		Product: firstMatch(columns, productKeywords),
		Amount:  firstMatch(columns, amountKeywords),
	}
}

// RequireRoles reports the first of product or amount left unresolved.
func RequireRoles(roles models.ColumnRoles) error {
	if roles.Amount == "" {
		return fmt.Errorf("%w: amount", ErrRoleUnresolved)
	}
	if roles.Product == "" {
		return fmt.Errorf("%w: product", ErrRoleUnresolved)
	}
	return nil
}

func firstMatch(columns, keywords []string) string {
	for _, c := range columns {
		lower := strings.ToLower(c)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return c
			}
		}
	}
	return ""
}
