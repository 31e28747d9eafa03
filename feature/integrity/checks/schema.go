package checks

import (
	"context"
	"fmt"
	"sync"

	"mastodon-sync/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Table statuses.
const (
	TableOK      = "ok"
	TableMissing = "missing"
	TableDrifted = "drifted"
)

// SchemaReport compares the live database with the graph models.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors,omitempty"`
}

// TableReport is the state of one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"`
}

// CheckSchema derives the expected table and columns of every model through GORM's
// schema parser and reports what the live database lacks. Extra live columns are
// ignored.
func CheckSchema(ctx context.Context, db *gorm.DB, models []any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport, len(models)),
	}

	cache := &sync.Map{}
	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		expected := make([]string, 0, len(s.DBNames))
		expected = append(expected, s.DBNames...)

		missing, err := database.MissingColumns(ctx, db, s.Table, expected)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to inspect table %s: %v", s.Table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: missing, Status: TableOK}
		switch {
		case len(missing) == len(expected):
			tbl.Status = TableMissing
		case len(missing) > 0:
			tbl.Status = TableDrifted
		}
		if tbl.Status != TableOK {
			report.Matched = false
		}
		report.Tables[s.Table] = tbl
	}
	return report, nil
}
