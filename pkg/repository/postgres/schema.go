package postgres

import (
	"context"
	"fmt"

	"github.com/cybersoft/talentmatch/pkg/record"
)

// args encodes record.List values to JSON text and passes everything else through.
func args(vals ...any) ([]any, error) {
	out := make([]any, len(vals))
	for i, v := range vals {
		l, ok := v.(record.List)
		if !ok {
			out[i] = v
			continue
		}
		text, err := record.Encode(l)
		if err != nil {
			return nil, fmt.Errorf("encode list column %d: %w", i, err)
		}
		out[i] = text
	}
	return out, nil
}

func ensureSchema(ctx context.Context, db DB, ddl string) error {
	if _, err := db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// emptyLists replaces lists left nil by NULL columns.
func emptyLists(ls ...*record.List) {
	for _, l := range ls {
		if *l == nil {
			*l = record.List{}
		}
	}
}
