package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo is one live column of a table, normalized to lower case.
type ColumnInfo struct {
	Field    string
	Type     string
	Nullable bool
}

// GetTableColumns retrieves the column definitions for a given table.
// A table that does not exist yields an empty slice and no error.
func GetTableColumns(ctx context.Context, db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	if db.Dialector.Name() == DriverSQLite {
		var rows []struct {
			Name    string
			Type    string
			Notnull int
		}
		if err := db.WithContext(ctx).Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}

		columns := make([]ColumnInfo, 0, len(rows))
		for _, r := range rows {
			columns = append(columns, ColumnInfo{
				Field:    strings.ToLower(r.Name),
				Type:     strings.ToLower(r.Type),
				Nullable: r.Notnull == 0,
			})
		}
		return columns, nil
	}

	if !db.WithContext(ctx).Migrator().HasTable(tableName) {
		return []ColumnInfo{}, nil
	}

	var rows []struct {
		Field string
		Type  string
		Null  string
	}
	if err := db.WithContext(ctx).Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(rows))
	for _, r := range rows {
		columns = append(columns, ColumnInfo{
			Field:    strings.ToLower(r.Field),
			Type:     strings.ToLower(r.Type),
			Nullable: strings.EqualFold(r.Null, "YES"),
		})
	}
	return columns, nil
}

// MissingColumns returns the expected column names absent from the live table, sorted.
func MissingColumns(ctx context.Context, db *gorm.DB, tableName string, expected []string) ([]string, error) {
	live, err := GetTableColumns(ctx, db, tableName)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(live))
	for _, c := range live {
		present[c.Field] = struct{}{}
	}

	missing := []string{}
	for _, name := range expected {
		if _, ok := present[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing, nil
}
