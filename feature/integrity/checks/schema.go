package checks

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"prsk-lab/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport is the result of comparing the database against the models.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport is the result for one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

type column struct {
	name string
	typ  string
}

// CheckSchema verifies the database schema using the GORM models as the
// source of truth. Many2many join tables are checked too. Column types are
// only compared on MySQL, where the models declare them.
func CheckSchema(db *gorm.DB, models []any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}
	compareTypes := db.Dialector.Name() == "mysql"
	cache := &sync.Map{}

	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		checkTable(db, report, s.Table, expectedColumns(s), compareTypes)
		for _, rel := range s.Relationships.Many2Many {
			if rel.JoinTable == nil {
				continue
			}
			if _, done := report.Tables[rel.JoinTable.Table]; done {
				continue
			}
			checkTable(db, report, rel.JoinTable.Table, expectedColumns(rel.JoinTable), false)
		}
	}
	return report, nil
}

func expectedColumns(s *schema.Schema) []column {
	cols := make([]column, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		cols = append(cols, column{name: f.DBName, typ: strings.ToLower(f.TagSettings["TYPE"])})
	}
	return cols
}

func checkTable(db *gorm.DB, report *SchemaReport, table string, expected []column, compareTypes bool) {
	actual, err := database.GetTableColumns(db, table)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
		report.Tables[table] = TableReport{MissingColumns: []string{}, TypeMismatches: []string{}, Status: "error"}
		report.Matched = false
		return
	}

	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}
	// SQLite reports a missing table as one without columns
	if len(actual) == 0 {
		tbl.Status = "missing"
		report.Tables[table] = tbl
		report.Matched = false
		return
	}

	actualMap := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		actualMap[col.Field] = col
	}

	for _, col := range expected {
		act, exists := actualMap[col.name]
		if !exists {
			tbl.MissingColumns = append(tbl.MissingColumns, col.name)
			continue
		}
		if compareTypes && col.typ != "" && !strings.Contains(act.Type, col.typ) {
			tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", col.name, col.typ, act.Type))
		}
	}

	if len(tbl.MissingColumns) > 0 || len(tbl.TypeMismatches) > 0 {
		tbl.Status = "error"
		report.Matched = false
	}
	sort.Strings(tbl.MissingColumns)
	report.Tables[table] = tbl
}
