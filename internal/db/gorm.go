package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGorm wraps an open pool in a gorm session for dialect. The pool stays
// owned by the caller.
func NewGorm(dialect string, conn *sqlx.DB) (*gorm.DB, error) {
	var d gorm.Dialector
	switch dialect {
	case DialectMySQL:
		d = mysql.New(mysql.Config{Conn: conn.DB})
	case DialectPostgres:
		d = postgres.New(postgres.Config{Conn: conn.DB})
	case DialectSQLite:
		d = &sqlite.Dialector{Conn: conn.DB}
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}

	return gorm.Open(d, &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
}
