package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/isometry/eventbridge-explorer/internal/session"
	"github.com/isometry/eventbridge-explorer/internal/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	store := session.NewStore()
	a := store.Create()
	b := store.Create()

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Empty(t, a.Bus)
	assert.Equal(t, 2, store.Len())
}

func TestResolve(t *testing.T) {
	store := session.NewStore()
	existing := store.Create()

	testCases := []struct {
		Name    string
		ID      string
		Created bool
	}{
		{Name: "empty_id", ID: "", Created: true},
		{Name: "unknown_id", ID: "does-not-exist", Created: true},
		{Name: "known_id", ID: existing.ID, Created: false},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			sess, created := store.Resolve(tc.ID)
			assert.Equal(t, tc.Created, created)
			if !tc.Created {
				assert.Equal(t, tc.ID, sess.ID)
			} else {
				assert.NotEqual(t, tc.ID, sess.ID)
			}
		})
	}
}

func TestIsolation(t *testing.T) {
	store := session.NewStore()
	a := store.Create()
	b := store.Create()

	a.Select("orders")
	a.Rules = []topology.Rule{{Name: "R1"}}
	store.Update(a)

	gotA, ok := store.Get(a.ID)
	require.True(t, ok)
	gotB, ok := store.Get(b.ID)
	require.True(t, ok)

	assert.Equal(t, "orders", gotA.Bus)
	assert.Len(t, gotA.Rules, 1)
	assert.Empty(t, gotB.Bus)
	assert.Empty(t, gotB.Rules)
}

func TestCopiesAreDetached(t *testing.T) {
	store := session.NewStore()
	sess := store.Create()
	sess.Rules = []topology.Rule{{Name: "R1"}}
	store.Update(sess)

	sess.Rules[0].Name = "mutated"
	got, _ := store.Get(sess.ID)
	assert.Equal(t, "R1", got.Rules[0].Name)

	got.Rules[0].Name = "mutated again"
	again, _ := store.Get(sess.ID)
	assert.Equal(t, "R1", again.Rules[0].Name)
}

func TestSelect(t *testing.T) {
	sess := session.Session{Bus: "a", Rules: []topology.Rule{{Name: "R1"}}}
	sess.Select("a")
	assert.Len(t, sess.Rules, 1)

	sess.Select("b")
	assert.Equal(t, "b", sess.Bus)
	assert.Empty(t, sess.Rules)
}

func TestFindBus(t *testing.T) {
	sess := session.Session{Buses: []topology.EventBus{{Name: "default"}, {Name: "orders", Arn: "arn:orders"}}}

	bus, found := sess.FindBus("orders")
	require.True(t, found)
	assert.Equal(t, "arn:orders", bus.Arn)

	_, found = sess.FindBus("missing")
	assert.False(t, found)
}

func TestExpiry(t *testing.T) {
	mc := clock.NewMock()
	store := session.NewStore(session.WithClock(mc), session.WithTTL(time.Hour))
	sess := store.Create()

	mc.Add(30 * time.Minute)
	store.Update(sess)
	mc.Add(45 * time.Minute)
	_, ok := store.Get(sess.ID)
	assert.True(t, ok)

	mc.Add(time.Hour)
	_, ok = store.Get(sess.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestLastWriterWins(t *testing.T) {
	store := session.NewStore()
	sess := store.Create()

	var wg sync.WaitGroup
	for _, bus := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, _ := store.Get(sess.ID)
			s.Select(bus)
			store.Update(s)
		}()
	}
	wg.Wait()

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Contains(t, []string{"a", "b", "c", "d"}, got.Bus)
}

func TestDelete(t *testing.T) {
	store := session.NewStore()
	sess := store.Create()
	store.Delete(sess.ID)
	_, ok := store.Get(sess.ID)
	assert.False(t, ok)
}
