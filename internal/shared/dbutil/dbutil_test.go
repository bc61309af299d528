package dbutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-3))
	assert.Equal(t, 10, ClampLimit(10))
	assert.Equal(t, MaxLimit, ClampLimit(10000))
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'employees.uq_employees_email'"}

	assert.True(t, IsDuplicateKey(dup, ""))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", dup), "uq_employees_email"))
	assert.False(t, IsDuplicateKey(dup, "uq_employees_code"))
	assert.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1452, Message: "fk"}, ""))
	assert.False(t, IsDuplicateKey(errors.New("Duplicate entry"), ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}

	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert: %w", fk)))
	assert.False(t, IsForeignKeyViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsForeignKeyViolation(errors.New("fk")))
}
