package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itradeops/itradectl/internal/collection"
	"github.com/itradeops/itradectl/internal/logging"
)

type row struct {
	ID    string
	Value int
}

func newFixture(answer bool, rows ...row) (*Dispatcher[row], *collection.Collection[row], *int) {
	col := collection.New(func(r row) string { return r.ID })
	_ = col.LoadAll(context.Background(), func(context.Context) ([]row, error) {
		return rows, nil
	})
	prompts := 0
	confirm := func(string) (bool, error) {
		prompts++
		return answer, nil
	}
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	return New(col, confirm, log), col, &prompts
}

func TestRemove_SuccessDropsRowKeepsOrder(t *testing.T) {
	d, col, prompts := newFixture(true, row{ID: "A"}, row{ID: "B"}, row{ID: "C"})

	err := d.Remove(context.Background(), "B", "confirm transaction B?", func(context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, *prompts)
	snap := col.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "A", snap[0].Key)
	assert.Equal(t, "C", snap[1].Key)
}

func TestRemove_DeclinedSendsNothing(t *testing.T) {
	called := false
	d, col, _ := newFixture(false, row{ID: "A"})

	err := d.Remove(context.Background(), "A", "sure?", func(context.Context) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, ErrDeclined)
	assert.False(t, called)
	assert.Equal(t, 1, col.Len())
}

func TestRemove_CallFailureKeepsRow(t *testing.T) {
	d, col, _ := newFixture(true, row{ID: "A", Value: 7})

	err := d.Remove(context.Background(), "A", "sure?", func(context.Context) error {
		return errors.New("insufficient balance")
	})

	require.Error(t, err)
	rec, ok := col.Get("A")
	require.True(t, ok)
	assert.False(t, rec.Loading)
	assert.Equal(t, 7, rec.Data.Value, "row back to last-known-good")
}

func TestRefreshOne_ReplacesOnlyTheActedRow(t *testing.T) {
	d, col, _ := newFixture(true, row{ID: "u1", Value: 1}, row{ID: "u2", Value: 2})

	err := d.RefreshOne(context.Background(), "u1", "cancel order?",
		func(context.Context) error { return nil },
		func(context.Context) (row, error) { return row{ID: "u1", Value: 10}, nil },
	)

	require.NoError(t, err)
	r1, _ := col.Get("u1")
	r2, _ := col.Get("u2")
	assert.Equal(t, 10, r1.Data.Value)
	assert.False(t, r1.Loading)
	assert.Equal(t, 2, r2.Data.Value)
	assert.False(t, r2.Loading)
}

func TestRefreshOne_CallFailureSkipsFetch(t *testing.T) {
	fetched := false
	d, col, _ := newFixture(true, row{ID: "u1", Value: 1})

	err := d.RefreshOne(context.Background(), "u1", "place order?",
		func(context.Context) error { return errors.New("rejected") },
		func(context.Context) (row, error) {
			fetched = true
			return row{}, nil
		},
	)

	require.Error(t, err)
	assert.False(t, fetched)
	rec, _ := col.Get("u1")
	assert.Equal(t, 1, rec.Data.Value)
	assert.False(t, rec.Loading)
}

func TestRefreshOne_FetchFailureRestoresRow(t *testing.T) {
	// The mutation went through; only the follow-up read failed. The row
	// keeps its previous data and the error says the action was applied.
	d, col, _ := newFixture(true, row{ID: "u1", Value: 1})

	err := d.RefreshOne(context.Background(), "u1", "cancel order?",
		func(context.Context) error { return nil },
		func(context.Context) (row, error) { return row{}, errors.New("timeout") },
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "action applied")
	rec, _ := col.Get("u1")
	assert.Equal(t, 1, rec.Data.Value)
	assert.False(t, rec.Loading)
}
