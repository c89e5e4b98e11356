package listctl

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshPopulatesResultSet(t *testing.T) {
	backend := newFakeBackend(25)
	ctl := NewController[row](backend.search)

	assert.Equal(t, PhaseIdle, ctl.Phase())
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)

	res := ctl.Result()
	assert.Equal(t, PhasePopulated, ctl.Phase())
	assert.Len(t, res.Rows, 10)
	assert.Equal(t, 25, res.TotalCount)
	assert.False(t, res.IsLoading)
	assert.LessOrEqual(t, len(res.Rows), ctl.Query().PageSize)
	assert.GreaterOrEqual(t, res.TotalCount, len(res.Rows))
}

func TestBeginMarksLoadingWithoutTouchingQuery(t *testing.T) {
	ctl := NewController[row](newFakeBackend(3).search)
	ctl.UpdateQuery(func(q *Query) { q.SetSearch("row") })
	before := ctl.Query()

	ticket, err := ctl.Begin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), ticket.Generation)
	assert.Equal(t, PhaseLoading, ctl.Phase())
	assert.True(t, ctl.Result().IsLoading)
	assert.Equal(t, before, ctl.Query())
	assert.Equal(t, "row", ticket.Params.Get("Search"))
}

func TestLastRequestWins(t *testing.T) {
	backend := newFakeBackend(30)
	ctl := NewController[row](backend.search)

	first, err := ctl.Begin(context.Background())
	require.NoError(t, err)
	ctl.UpdateQuery(func(q *Query) { q.SetSearch("Row 2") })
	second, err := ctl.Begin(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, first.Context().Err(), context.Canceled)

	newer := ctl.Run(second)
	applied := ctl.Apply(newer)
	assert.False(t, applied.Stale)

	// The older response arrives last and must not overwrite fresher data.
	older := Result[row]{Generation: first.Generation, Rows: []row{{ID: "stale"}}, Total: 99}
	applied = ctl.Apply(older)
	assert.True(t, applied.Stale)

	res := ctl.Result()
	assert.Equal(t, 10, res.TotalCount)
	for _, r := range res.Rows {
		assert.Contains(t, r.Name, "Row 2")
	}
}

func TestFailureResetsToEmpty(t *testing.T) {
	backend := newFakeBackend(5)
	ctl := NewController[row](backend.search)
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, ctl.Result().Rows, 5)

	backend.err = errors.New("malformed response")
	applied, err := ctl.Refresh(context.Background())
	require.Error(t, err)
	assert.False(t, applied.Unauthorized)

	res := ctl.Result()
	assert.Empty(t, res.Rows)
	assert.NotNil(t, res.Rows)
	assert.Zero(t, res.TotalCount)
	assert.False(t, res.IsLoading)
	assert.Equal(t, PhaseEmptyFailed, ctl.Phase())
}

func TestResultRowsAreNeverNil(t *testing.T) {
	fresh := NewController[row](newFakeBackend(0).search)
	assert.NotNil(t, fresh.Result().Rows)

	backend := newFakeBackend(0)
	ctl := NewController[row](backend.search)
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)
	res := ctl.Result()
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
}

func TestResultReturnsACopy(t *testing.T) {
	ctl := NewController[row](newFakeBackend(3).search)
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)

	first := ctl.Result().Rows
	require.NotEmpty(t, first)
	first[0] = row{}
	assert.NotEqual(t, row{}, ctl.Result().Rows[0])
}

func TestUnauthorizedHaltsFurtherFetches(t *testing.T) {
	backend := newFakeBackend(5)
	backend.err = statusErr(http.StatusUnauthorized)
	ctl := NewController[row](backend.search)

	applied, err := ctl.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, applied.Unauthorized)
	assert.True(t, ctl.Halted())

	_, err = ctl.Begin(context.Background())
	assert.ErrorIs(t, err, ErrHalted)
	ctl.UpdateQuery(func(q *Query) { q.SetSearch("again") })
	_, err = ctl.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrHalted)
	assert.Equal(t, 1, backend.callCount())

	backend.err = nil
	ctl.Resume()
	assert.Equal(t, PhaseIdle, ctl.Phase())
	_, err = ctl.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, backend.callCount())
}

func TestDeletingLastRowOfLastPageClamps(t *testing.T) {
	backend := newFakeBackend(21)
	ctl := NewController[row](backend.search)
	ctl.UpdateQuery(func(q *Query) { q.SetPage(2) })
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, ctl.Result().Rows, 1)

	backend.remove("r-21")
	applied, err := ctl.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, applied.Refetch)

	res := ctl.Result()
	assert.Equal(t, 1, ctl.Query().PageIndex)
	assert.Equal(t, 20, res.TotalCount)
	assert.Len(t, res.Rows, 10)
	assert.Equal(t, PhasePopulated, ctl.Phase())
	assert.Equal(t, "2", backend.lastCall().Get("Page"))
}

func TestClampReportsRefetch(t *testing.T) {
	ctl := NewController[row](newFakeBackend(5).search)
	ctl.UpdateQuery(func(q *Query) { q.SetPage(3) })
	ticket, err := ctl.Begin(context.Background())
	require.NoError(t, err)

	applied := ctl.Apply(ctl.Run(ticket))
	assert.True(t, applied.Refetch)
	assert.Equal(t, 0, ctl.Query().PageIndex)
	assert.True(t, ctl.Result().IsLoading)
}

func TestDeletingOnlyRowShowsEmptyState(t *testing.T) {
	backend := newFakeBackend(1)
	ctl := NewController[row](backend.search)
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)

	backend.remove("r-01")
	_, err = ctl.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ctl.Result().Rows)
	assert.Zero(t, ctl.Result().TotalCount)
	assert.Equal(t, 0, ctl.Query().PageIndex)
	assert.Equal(t, PhasePopulated, ctl.Phase())
}

func TestFetchTimeout(t *testing.T) {
	slow := func(ctx context.Context, _ url.Values) ([]row, int, error) {
		<-ctx.Done()
		return nil, 0, ctx.Err()
	}
	ctl := NewController[row](slow, WithFetchTimeout[row](20*time.Millisecond))

	started := time.Now()
	_, err := ctl.Refresh(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 2*time.Second)
	assert.Equal(t, PhaseEmptyFailed, ctl.Phase())
}

func TestSortMapAppliedToTicket(t *testing.T) {
	backend := newFakeBackend(3)
	ctl := NewController[row](backend.search, WithSortMap[row](SortMap{"name": "Name"}))
	ctl.UpdateQuery(func(q *Query) { q.SetSort("name", true) })
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Name", backend.lastCall().Get("SortBy"))
	assert.Equal(t, "true", backend.lastCall().Get("IsDescending"))
}

func TestOversizedPageIsTrimmed(t *testing.T) {
	greedy := func(context.Context, url.Values) ([]row, int, error) {
		return []row{{ID: "1"}, {ID: "2"}, {ID: "3"}}, 3, nil
	}
	ctl := NewController[row](greedy, WithQuery[row](NewQuery(2)))
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, ctl.Result().Rows, 2)
	assert.Equal(t, 3, ctl.Result().TotalCount)
}

func TestPatchRowKeepsMembership(t *testing.T) {
	ctl := NewController[row](newFakeBackend(3).search)
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)

	assert.True(t, ctl.PatchRow(row{ID: "r-02", Name: "Row 02", Active: false}))
	assert.False(t, ctl.PatchRow(row{ID: "missing"}))

	res := ctl.Result()
	assert.Len(t, res.Rows, 3)
	assert.Equal(t, 3, res.TotalCount)
	assert.False(t, res.Rows[1].Active)
}

func TestPendingLifecycle(t *testing.T) {
	ctl := NewController[row](newFakeBackend(1).search)
	_, ok := ctl.Pending()
	assert.False(t, ok)

	ctl.Open(row{ID: "r-01"}, MutationDelete)
	pending, ok := ctl.Pending()
	require.True(t, ok)
	assert.Equal(t, MutationDelete, pending.Kind)
	assert.Equal(t, "r-01", pending.Entity.ID)

	ctl.ClosePending()
	_, ok = ctl.Pending()
	assert.False(t, ok)
}
