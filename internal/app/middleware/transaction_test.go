package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadstay/internal/app/commands"
	"nomadstay/internal/app/uow"
	domainavailability "nomadstay/internal/domain/availability"
	domainbooking "nomadstay/internal/domain/booking"
	domainlistings "nomadstay/internal/domain/listings"
)

type sessionKey struct{}

// sessionUnit mimics a driver-session-backed unit of work: repositories only
// see the transaction when InjectContext enriched the dispatch context.
type sessionUnit struct {
	committed  bool
	rolledBack bool
}

func (u *sessionUnit) Listings() domainlistings.ListingRepository  { return nil }
func (u *sessionUnit) Availability() domainavailability.Repository { return nil }
func (u *sessionUnit) Bookings() domainbooking.Repository          { return nil }

func (u *sessionUnit) Commit(context.Context) error {
	u.committed = true
	return nil
}

func (u *sessionUnit) Rollback(context.Context) error {
	u.rolledBack = true
	return nil
}

func (u *sessionUnit) InjectContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey{}, u)
}

type sessionFactory struct {
	unit *sessionUnit
}

func (f *sessionFactory) Begin(context.Context, uow.TxOptions) (uow.UnitOfWork, error) {
	return f.unit, nil
}

type plainCommand struct{}

func (plainCommand) Key() string { return "test.plain" }

type captureBus struct {
	ctx context.Context
	err error
}

func (b *captureBus) Dispatch(ctx context.Context, _ commands.Command) (any, error) {
	b.ctx = ctx
	return nil, b.err
}

func TestTransactionInjectsSessionContext(t *testing.T) {
	unit := &sessionUnit{}
	inner := &captureBus{}
	bus := ChainCommands(inner, Transaction(&sessionFactory{unit: unit}, nil))

	_, err := bus.Dispatch(context.Background(), plainCommand{})
	require.NoError(t, err)

	require.NotNil(t, inner.ctx)
	assert.Same(t, unit, inner.ctx.Value(sessionKey{}),
		"repositories must run inside the unit's session")
	got, ok := uow.FromContext(inner.ctx)
	require.True(t, ok)
	assert.Same(t, uow.UnitOfWork(unit), got)
	assert.True(t, unit.committed)
	assert.False(t, unit.rolledBack)
}

func TestTransactionRollsBackOnHandlerError(t *testing.T) {
	unit := &sessionUnit{}
	inner := &captureBus{err: errors.New("listings: not found")}
	bus := ChainCommands(inner, Transaction(&sessionFactory{unit: unit}, nil))

	_, err := bus.Dispatch(context.Background(), plainCommand{})
	require.Error(t, err)
	assert.False(t, unit.committed)
	assert.True(t, unit.rolledBack)
}
