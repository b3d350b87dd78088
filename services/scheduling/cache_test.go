package scheduling

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedService(t *testing.T, store *fakeStore) *DefaultSchedulingService {
	t.Helper()
	mr := miniredis.RunT(t)
	svc := newTestService(store, testNow)
	svc.Cache = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return svc
}

func TestSlotHintCacheServesSecondRead(t *testing.T) {
	store := newFakeStore()
	store.addDoctor(mondayDoctor())
	svc := newCachedService(t, store)
	ctx := context.Background()

	first, err := svc.GetAvailableSlots(ctx, "doc-1")
	require.NoError(t, err)

	// Reserve directly on the ledger, bypassing the service: the cached hint
	// is allowed to be stale until the TTL or an invalidation.
	appt := first[5].Slots[1]
	require.NoError(t, store.BookSlotTransactionally(ctx, testAppt("doc-1", appt.Date, appt.Time)))

	second, err := svc.GetAvailableSlots(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, labels(first[5].Slots), labels(second[5].Slots))
}

func TestBookingInvalidatesSlotHint(t *testing.T) {
	store := newFakeStore()
	store.addDoctor(mondayDoctor())
	svc := newCachedService(t, store)
	ctx := context.Background()

	_, err := svc.GetAvailableSlots(ctx, "doc-1")
	require.NoError(t, err)

	_, err = svc.BookAppointment(ctx, "doc-1", "pat-1", mondayKey, nineThirty, "")
	require.NoError(t, err)

	window, err := svc.GetAvailableSlots(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM", "10:30 AM"}, labels(window[5].Slots))
}

func TestCancelInvalidatesSlotHint(t *testing.T) {
	store := newFakeStore()
	store.addDoctor(mondayDoctor())
	svc := newCachedService(t, store)
	ctx := context.Background()

	appt, err := svc.BookAppointment(ctx, "doc-1", "pat-1", mondayKey, nineThirty, "")
	require.NoError(t, err)

	_, err = svc.GetAvailableSlots(ctx, "doc-1")
	require.NoError(t, err)

	require.NoError(t, svc.CancelAppointment(ctx, appt.ID, "pat-1", RolePatient))

	window, err := svc.GetAvailableSlots(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM"}, labels(window[5].Slots))
}
