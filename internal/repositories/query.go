package repositories

import (
	"net/url"
	"strconv"
	"strings"
)

// Query builds PostgREST query strings: horizontal filters as
// column=operator.value pairs plus select, order and limit.
type Query struct {
	table   string
	selects []string
	filters []filter
	orders  []string
	limit   int
}

type filter struct {
	column   string
	operator string
	value    string
}

// NewQuery starts a query against table
func NewQuery(table string) *Query {
	return &Query{table: table}
}

// Table returns the target table name
func (q *Query) Table() string {
	return q.table
}

// Select sets the returned columns; no call selects every column
func (q *Query) Select(columns ...string) *Query {
	q.selects = append(q.selects, columns...)
	return q
}

// Eq adds an equality filter
func (q *Query) Eq(column, value string) *Query {
	return q.Where(column, "eq", value)
}

// Where adds a filter with an arbitrary PostgREST operator (eq, neq, gt, lt, in, ...)
func (q *Query) Where(column, operator, value string) *Query {
	q.filters = append(q.filters, filter{column: column, operator: operator, value: value})
	return q
}

// OrderBy adds a sort key; direction is "asc" or "desc"
func (q *Query) OrderBy(column, direction string) *Query {
	direction = strings.ToLower(direction)
	if direction != "asc" && direction != "desc" {
		direction = "asc"
	}
	q.orders = append(q.orders, column+"."+direction)
	return q
}

// Limit caps the number of rows; zero or less means no limit
func (q *Query) Limit(limit int) *Query {
	q.limit = limit
	return q
}

// Values returns the query as URL values
func (q *Query) Values() url.Values {
	values := url.Values{}

	if len(q.selects) == 0 {
		values.Set("select", "*")
	} else {
		values.Set("select", strings.Join(q.selects, ","))
	}

	for _, f := range q.filters {
		values.Add(f.column, f.operator+"."+f.value)
	}

	if len(q.orders) > 0 {
		values.Set("order", strings.Join(q.orders, ","))
	}

	if q.limit > 0 {
		values.Set("limit", strconv.Itoa(q.limit))
	}

	return values
}

// Encode returns the URL-encoded query string
func (q *Query) Encode() string {
	return q.Values().Encode()
}

// OrderHistoryQuery maps an order filter onto the orders table columns
func OrderHistoryQuery(table string, f *OrderFilter) *Query {
	q := NewQuery(table).
		Select("*").
		Eq("customer_ip", f.CustomerIP)

	if f.CustomerPhone != "" {
		q.Eq("customer_phone", f.CustomerPhone)
	}
	if f.CompletedOnly {
		q.Eq("status", "completed")
	}

	return q.OrderBy("created_at", "desc").Limit(f.Limit)
}
