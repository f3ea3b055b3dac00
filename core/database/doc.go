// Package database handles database connections, migrations and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or
// SQLite (development and tests) connections based on the application's
// configuration. Connections are opened with TranslateError so that unique
// violations surface as gorm.ErrDuplicatedKey regardless of the driver.
//
// # Migrations
//
// The MySQL schema lives in embedded SQL files under migrations/ and is
// applied with golang-migrate (MigrateUp, MigrateDown, MigrationVersion).
// SQLite databases are created with GORM AutoMigrate instead.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table (SHOW COLUMNS on MySQL,
// PRAGMA table_info on SQLite). The integrity feature compares them with
// the GORM models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "furnitures")
package database
