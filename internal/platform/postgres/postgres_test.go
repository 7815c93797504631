package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	dErrors "quorum/pkg/domain-errors"
)

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert org: %w", &pq.Error{Code: "23505", Constraint: "organizations_slug_key"})

	constraint, ok := UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "organizations_slug_key", constraint)

	_, ok = UniqueViolation(errors.New("boom"))
	assert.False(t, ok)
	assert.True(t, ForeignKeyViolation(&pq.Error{Code: "23503"}))
}

func TestBoundKeepsEarlierDeadline(t *testing.T) {
	d := NewDB(nil, time.Minute)

	parent, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ctx, release := d.bound(parent)
	defer release()
	parentDeadline, _ := parent.Deadline()
	deadline, _ := ctx.Deadline()
	assert.Equal(t, parentDeadline, deadline)

	ctx, release2 := d.bound(context.Background())
	defer release2()
	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, time.Second)
}

func TestRunInTxRejectsCancelledContext(t *testing.T) {
	d := NewDB(nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.RunInTx(ctx, func(context.Context) error { return nil })
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}
