package db

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/uptrace/bun"
)

// Category filter expressions combine bare terms with & (and), | (or),
// ! (not) and parentheses, e.g. "work|personal" or "!(archive|legacy)&bank".
// A bare term matches entries whose category contains it, case-insensitively.

var categoryTermPattern = regexp.MustCompile(`^[a-zA-Z0-9 _\-+./:]+$`)

// parseCategoryExpr recursively translates expr into WHERE clauses on qb.
// `and` selects how the produced clause joins its siblings; `negate` tracks
// an enclosing negation so De Morgan's laws hold for nested groups.
func parseCategoryExpr(expr string, qb bun.QueryBuilder, and bool, negate bool) (bun.QueryBuilder, error) {
	var err error

	expr = strings.TrimSpace(expr)

	// and
	if exprs := splitOnTopLevelChar(expr, '&'); len(exprs) > 1 {
		for _, expr = range exprs {
			qb, err = parseCategoryExpr(expr, qb, true != negate, negate)
			if err != nil {
				return nil, err
			}
		}
		return qb, nil
	}

	// or
	if exprs := splitOnTopLevelChar(expr, '|'); len(exprs) > 1 {
		for _, expr = range exprs {
			qb, err = parseCategoryExpr(expr, qb, false != negate, negate)
			if err != nil {
				return nil, err
			}
		}
		return qb, nil
	}

	// negation
	expr, negated := strings.CutPrefix(expr, "!")

	expr = strings.TrimSpace(expr)

	// braces
	if strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") {
		expr = expr[1 : len(expr)-1] // removes braces

		operator := map[bool]string{
			true:  " AND ",
			false: " OR ",
		}[and]

		if negated {
			// SQL has no clean NOT for a whole group here; flipping the
			// negate flag and letting De Morgan do the work is equivalent.
			negate = !negate
		}

		qb = qb.WhereGroup(operator, func(qb bun.QueryBuilder) bun.QueryBuilder {
			qb, err = parseCategoryExpr(expr, qb, true != negate, negate)
			return qb
		})

		if err != nil {
			return nil, err
		}
		return qb, nil
	}

	// bare term
	{
		if !categoryTermPattern.MatchString(expr) {
			return nil, fmt.Errorf("invalid category term: %s", expr)
		}

		query := map[bool]string{
			true:  "LOWER(category) NOT LIKE ?",
			false: "LOWER(category) LIKE ?",
		}[negated != negate]

		pattern := "%" + strings.ToLower(expr) + "%"

		if and {
			return qb.Where(query, pattern), nil
		} else {
			return qb.WhereOr(query, pattern), nil
		}
	}
}

func splitOnTopLevelChar(expr string, op rune) []string {
	var result []string
	depth := 0
	start := 0

	for i, ch := range expr {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case op:
			if depth == 0 {
				result = append(result, expr[start:i])
				start = i + 1
			}
		}
	}

	result = append(result, expr[start:])
	return result
}

// ValidateCategoryFilter checks that expr is a well-formed category filter
// expression without touching the database.
func ValidateCategoryFilter(expr string) error {
	sq := &bun.SelectQuery{}
	_, err := parseCategoryExpr(expr, sq.QueryBuilder(), true, false)
	return err
}

// CategoryQueryBuilder validates expr and returns a callback that applies the
// corresponding WHERE clauses to a select query.
func CategoryQueryBuilder(expr string) (func(bun.QueryBuilder) bun.QueryBuilder, error) {
	if err := ValidateCategoryFilter(expr); err != nil {
		return nil, err
	}
	return func(qb bun.QueryBuilder) bun.QueryBuilder {
		qb, _ = parseCategoryExpr(expr, qb, true, false)
		return qb
	}, nil
}
