package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/critique/internal/domain/audit"
	"github.com/bryanwahyu/critique/internal/domain/share"
)

func TestKVStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()

	value := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "report_1", value))
	value[0] = 'X'

	got, err := s.Get(ctx, "report_1")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	_, err = s.Get(ctx, "report_2")
	assert.ErrorIs(t, err, share.ErrNotFound)
}

func TestAuditRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := NewAuditRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.Save(ctx, &audit.Audit{ID: "a", UserID: "u1", CreatedAt: base}))
	require.NoError(t, r.Save(ctx, &audit.Audit{ID: "b", UserID: "u1", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, r.Save(ctx, &audit.Audit{ID: "c", UserID: "u2", CreatedAt: base}))

	list, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, audit.AuditID("b"), list[0].ID)
	assert.Equal(t, audit.AuditID("a"), list[1].ID)

	empty, err := r.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = r.Get(ctx, "missing")
	assert.ErrorIs(t, err, audit.ErrNotFound)
}
