package database

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/trigram"
)

// SQLiteDriverName is a sqlite3 driver whose connections provide the
// pg_trgm style similarity(text, text) function.
const SQLiteDriverName = "sqlite3_trgm"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("similarity", trigram.Similarity, true)
		},
	})
}

// OpenSQLite returns a gorm dialector for dsn using SQLiteDriverName.
func OpenSQLite(dsn string) gorm.Dialector {
	return &sqlite.Dialector{DriverName: SQLiteDriverName, DSN: dsn}
}
