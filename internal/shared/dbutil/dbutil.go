package dbutil

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL server error numbers.
const (
	ErDupEntry        = 1062
	ErNoReferencedRow = 1452
)

// Conn returns a gorm handle bound to ctx that runs on tx when tx is set,
// so repository writes join the service's database/sql transaction.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	conn := db.WithContext(ctx)
	if tx != nil {
		conn.Statement.ConnPool = tx
	}
	return conn
}

// IsDuplicateKey reports whether err is a MySQL unique constraint violation.
// A non-empty key must appear in the driver message, i.e. the index name.
func IsDuplicateKey(err error, key string) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) || myErr.Number != ErDupEntry {
		return false
	}
	return key == "" || strings.Contains(strings.ToLower(myErr.Message), strings.ToLower(key))
}

// IsForeignKeyViolation reports whether err is a MySQL insert or update that
// referenced a missing parent row.
func IsForeignKeyViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == ErNoReferencedRow
}
