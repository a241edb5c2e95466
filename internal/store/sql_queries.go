package store

import (
	"time"

	"github.com/Masterminds/squirrel"
)

const (
	configTable = "config"
	configRowID = 1
)

const upsertConfigSuffix = `ON CONFLICT (id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`

// selectConfigQuery reads the singleton row. forUpdate locks it for the rest
// of the transaction on dialects that support row locks.
func selectConfigQuery(b squirrel.StatementBuilderType, forUpdate bool) (string, []any, error) {
	q := b.Select("document").
		From(configTable).
		Where(squirrel.Eq{"id": configRowID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	return q.ToSql()
}

// upsertConfigQuery writes the whole document into the singleton row.
func upsertConfigQuery(b squirrel.StatementBuilderType, document string, now time.Time) (string, []any, error) {
	return b.Insert(configTable).
		Columns("id", "document", "updated_at").
		Values(configRowID, document, now).
		Suffix(upsertConfigSuffix).
		ToSql()
}
