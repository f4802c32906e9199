package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	r := &Repository{}

	t.Run("unique violation maps to ErrSlotTaken", func(t *testing.T) {
		pqErr := &pq.Error{Code: "23505", Constraint: "uniq_active_slot"}

		err := r.mapWriteError("Create", pqErr)
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("wrapped unique violation is still detected", func(t *testing.T) {
		wrapped := fmt.Errorf("insert failed: %w", &pq.Error{Code: "23505"})

		err := r.mapWriteError("Create", wrapped)
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("connection class maps to ErrStorageUnavailable", func(t *testing.T) {
		pqErr := &pq.Error{Code: "08006"}

		err := r.mapWriteError("Create", pqErr)
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("other errors map to ErrExecQuery", func(t *testing.T) {
		err := r.mapWriteError("Create", errors.New("syntax error"))
		assert.ErrorIs(t, err, ErrExecQuery)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("not a pq error")))
	assert.False(t, isUniqueViolation(nil))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "bad connection", err: driver.ErrBadConn, want: true},
		{name: "context deadline", err: context.DeadlineExceeded, want: true},
		{name: "connection done", err: sql.ErrConnDone, want: true},
		{name: "network error", err: net.Error(timeoutErr{}), want: true},
		{name: "pq connection exception class", err: &pq.Error{Code: "08000"}, want: true},
		{name: "pq connection failure", err: &pq.Error{Code: "08006"}, want: true},
		{name: "pq unique violation is not unavailability", err: &pq.Error{Code: "23505"}, want: false},
		{name: "plain query error", err: errors.New("column does not exist"), want: false},
		{name: "no rows is not unavailability", err: sql.ErrNoRows, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnavailable(tt.err))
		})
	}
}
