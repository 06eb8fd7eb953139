package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is the first free parameter number (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// compareCondition implements a binary comparison (field <op> value).
type compareCondition struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "completed") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Lt creates a WHERE condition for a strict less-than comparison.
// Example: Lt("processed_at", cutoff) generates "processed_at < @p0"
func Lt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, paramName)
	return sql, map[string]interface{}{paramName: c.value}
}

// StartsWith creates a WHERE condition matching string values with a prefix.
// Example: StartsWith("aggregate_id", "quirino/") generates "STARTS_WITH(aggregate_id, @p0)"
func StartsWith(field, prefix string) Condition {
	return &startsWithCondition{field: field, prefix: prefix}
}

type startsWithCondition struct {
	field  string
	prefix string
}

func (c *startsWithCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("STARTS_WITH(%s, @%s)", c.field, paramName), map[string]interface{}{paramName: c.prefix}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("processed_at") generates "processed_at IS NOT NULL"
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
}

// groupCondition joins child conditions with AND or OR inside parentheses.
type groupCondition struct {
	op       string
	children []Condition
}

// AllOf groups conditions with AND.
// Example: AllOf(Eq("a", 1), Eq("b", 2)) generates "(a = @p0 AND b = @p1)"
func AllOf(conditions ...Condition) Condition {
	return &groupCondition{op: " AND ", children: conditions}
}

// AnyOf groups conditions with OR.
// Example: AnyOf(Eq("a", 1), Eq("b", 2)) generates "(a = @p0 OR b = @p1)"
func AnyOf(conditions ...Condition) Condition {
	return &groupCondition{op: " OR ", children: conditions}
}

// SQL renders the children, numbering parameters consecutively.
func (c *groupCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	params := make(map[string]interface{})
	parts := make([]string, 0, len(c.children))
	for _, child := range c.children {
		fragment, childParams := child.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range childParams {
			params[k] = v
		}
		paramIndex += len(childParams)
	}
	return "(" + strings.Join(parts, c.op) + ")", params
}
