package check

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// MissingField represents a missing field.
type MissingField struct {
	Table string

	ID   string
	Name string

	MissingField string
}

const missingQuery = `
	SELECT 'employees' as table, id, name, 'billable_wage' as missingfield FROM employees WHERE billable_wage = 0
	UNION ALL
	SELECT 'employees' as table, id, name, 'cost_wage' as missingfield FROM employees WHERE cost_wage = 0
	UNION ALL
	SELECT 'jobs' as table, id, name, 'number' as missingfield FROM jobs WHERE number = ''
	UNION ALL
	SELECT 'hour_types' as table, id, name, 'multiplier' as missingfield FROM hour_types WHERE multiplier = 0
	UNION ALL
	SELECT 'rental_items' as table, id, name, 'rate' as missingfield FROM rental_items WHERE rate = 0 AND active
	UNION ALL
	SELECT 'rental_entries' as table, rental_entries.id, rental_items.name, 'rate' as missingfield
		FROM rental_entries LEFT JOIN rental_items ON (rental_entries.item_id = rental_items.id)
		WHERE rental_entries.rate = 0
`

// Missing checks for fields whose absence silently zeroes summary amounts:
// unset wages, blank job numbers, zero multipliers and rates.
func Missing(ctx context.Context, q sqlx.QueryerContext) ([]MissingField, error) {
	var missing []MissingField

	err := sqlx.SelectContext(ctx, q, &missing, fmt.Sprintf(`WITH missing AS (%s) SELECT * FROM missing ORDER BY "table",missingfield,name`, missingQuery))
	return missing, err
}
