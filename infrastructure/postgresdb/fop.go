package postgresdb

import (
	"bytes"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// AddOrderByClause appends an ORDER BY clause to the query buffer. The
// primary key is added as a secondary sort so paging stays stable when the
// order field has duplicates.
func AddOrderByClause(buf *bytes.Buffer, orderField, pkField, direction string) error {
	quotedOrderField, err := QuoteIdentifier(orderField)
	if err != nil {
		return fmt.Errorf("invalid order field name: %w", err)
	}
	quotedPKField, err := QuoteIdentifier(pkField)
	if err != nil {
		return fmt.Errorf("invalid pk field name: %w", err)
	}

	if direction != ASC && direction != DESC {
		return fmt.Errorf("invalid order direction: %s", direction)
	}

	fmt.Fprintf(buf, " ORDER BY %s %s", quotedOrderField, direction)

	if orderField != pkField {
		fmt.Fprintf(buf, ", %s %s", quotedPKField, direction)
	}

	return nil
}

// AddLimitClause appends a LIMIT clause and binds its value.
func AddLimitClause(limit int, data pgx.NamedArgs, buf *bytes.Buffer) {
	buf.WriteString(" LIMIT @limit")
	data["limit"] = limit
}
