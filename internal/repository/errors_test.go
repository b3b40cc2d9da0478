package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
)

func TestClassifyMarksConflictsRetryable(t *testing.T) {
	deadlock := &mysql.MySQLError{Number: mysqlErrDeadlock, Message: "Deadlock found when trying to get lock"}
	assert.True(t, apperr.IsRetryable(classify(deadlock)))

	timeout := &mysql.MySQLError{Number: mysqlErrLockWaitTimeout, Message: "Lock wait timeout exceeded"}
	assert.True(t, apperr.IsRetryable(classify(timeout)))

	wrapped := fmt.Errorf("commit: %w", deadlock)
	assert.True(t, apperr.IsRetryable(classify(wrapped)))
}

func TestClassifyPassesOtherErrorsThrough(t *testing.T) {
	assert.Nil(t, classify(nil))

	plain := errors.New("broken pipe")
	assert.Equal(t, plain, classify(plain))

	dup := &mysql.MySQLError{Number: mysqlErrDuplicateEntry, Message: "Duplicate entry"}
	assert.False(t, apperr.IsRetryable(classify(dup)),
		"a duplicate key is a business failure, not a retry candidate")
}

func TestIsDuplicate(t *testing.T) {
	dup := &mysql.MySQLError{Number: mysqlErrDuplicateEntry, Message: "Duplicate entry '1-2026' for key 'uq_active_request'"}
	assert.True(t, isDuplicate(dup))
	assert.True(t, isDuplicate(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isDuplicate(&mysql.MySQLError{Number: mysqlErrDeadlock}))
	assert.False(t, isDuplicate(errors.New("plain")))
	assert.False(t, isDuplicate(nil))
}

func TestSplitHobbies(t *testing.T) {
	assert.Nil(t, splitHobbies(sql.NullString{}))
	assert.Nil(t, splitHobbies(sql.NullString{Valid: true, String: "  "}))
	assert.Equal(t, []string{"reading", "chess"},
		splitHobbies(sql.NullString{Valid: true, String: "reading, chess"}))
	assert.Equal(t, []string{"gaming"},
		splitHobbies(sql.NullString{Valid: true, String: ",gaming,,"}))
}
