package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records writes and hands out callbacks so tests can replay
// change events, including stale ones.
type fakeStore struct {
	mu           sync.Mutex
	docs         map[string]Document
	callbacks    map[string]DocChangeFunc // last subscriber per doc
	cancelled    map[string]int
	writeErr     error
	subscribeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:      map[string]Document{},
		callbacks: map[string]DocChangeFunc{},
		cancelled: map[string]int{},
	}
}

func (f *fakeStore) GetDocument(_ context.Context, collection, id string) (Document, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[docKey(collection, id)]
	if !ok {
		return nil, false, nil
	}
	return cloneDocument(doc), true, nil
}

func (f *fakeStore) MergeWrite(_ context.Context, collection, id string, patch Document) error {
	if f.writeErr != nil {
		return writeFailed(f.writeErr)
	}
	f.mu.Lock()
	key := docKey(collection, id)
	merged := mergeDocuments(f.docs[key], patch)
	f.docs[key] = merged
	fn := f.callbacks[key]
	f.mu.Unlock()

	if fn != nil {
		fn(cloneDocument(merged), true)
	}
	return nil
}

func (f *fakeStore) Subscribe(collection, id string, fn DocChangeFunc) (func(), error) {
	if f.subscribeErr != nil {
		return nil, subscriptionFailed(f.subscribeErr)
	}
	f.mu.Lock()
	key := docKey(collection, id)
	f.callbacks[key] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		f.cancelled[key]++
		delete(f.callbacks, key)
		f.mu.Unlock()
	}, nil
}

func (f *fakeStore) callback(id string) DocChangeFunc {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callbacks[docKey(ProfileCollection, id)]
}

func TestProfileSynchronizer_AppliesRemoteChanges(t *testing.T) {
	store := newFakeStore()
	sync := NewProfileSynchronizer(store)

	sync.OnIdentityChange(&Identity{ID: "alice"})

	_, exists := sync.Snapshot()
	assert.False(t, exists, "no document before the first write")

	require.NoError(t, store.MergeWrite(context.Background(), ProfileCollection, "alice", Document{"status": "signed_in"}))

	doc, exists := sync.Snapshot()
	assert.True(t, exists)
	assert.Equal(t, "signed_in", doc["status"])
}

func TestProfileSynchronizer_DiscardsStaleEvents(t *testing.T) {
	store := newFakeStore()
	sync := NewProfileSynchronizer(store)

	sync.OnIdentityChange(&Identity{ID: "alice"})
	staleCallback := store.callback("alice")
	require.NotNil(t, staleCallback)

	sync.OnIdentityChange(&Identity{ID: "bob"})
	require.NoError(t, store.MergeWrite(context.Background(), ProfileCollection, "bob", Document{"status": "signed_in"}))

	// an in-flight event from alice's subscription arrives after the switch
	staleCallback(Document{"status": "stale"}, true)

	doc, exists := sync.Snapshot()
	require.True(t, exists)
	assert.Equal(t, "signed_in", doc["status"], "stale event must not corrupt bob's state")
}

func TestProfileSynchronizer_SingleSubscription(t *testing.T) {
	store := newFakeStore()
	sync := NewProfileSynchronizer(store)

	sync.OnIdentityChange(&Identity{ID: "alice"})
	sync.OnIdentityChange(&Identity{ID: "bob"})

	assert.Equal(t, 1, store.cancelled[docKey(ProfileCollection, "alice")],
		"previous subscription torn down before the new one opens")
	assert.Nil(t, store.callback("alice"))
	assert.NotNil(t, store.callback("bob"))
}

func TestProfileSynchronizer_DetachOnNilIdentity(t *testing.T) {
	store := newFakeStore()
	sync := NewProfileSynchronizer(store)

	sync.OnIdentityChange(&Identity{ID: "alice"})
	require.NoError(t, store.MergeWrite(context.Background(), ProfileCollection, "alice", Document{"status": "signed_in"}))

	sync.OnIdentityChange(nil)

	assert.Equal(t, 1, store.cancelled[docKey(ProfileCollection, "alice")])
	_, exists := sync.Snapshot()
	assert.False(t, exists, "snapshot cleared on detach")
}

func TestProfileSynchronizer_PrimesSnapshotFromExistingDoc(t *testing.T) {
	store := newFakeStore()
	store.docs[docKey(ProfileCollection, "alice")] = Document{"status": "registered"}

	sync := NewProfileSynchronizer(store)
	sync.OnIdentityChange(&Identity{ID: "alice"})

	doc, exists := sync.Snapshot()
	require.True(t, exists)
	assert.Equal(t, "registered", doc["status"])
}

func TestProfileSynchronizer_PushStatus(t *testing.T) {
	store := newFakeStore()
	sync := NewProfileSynchronizer(store)

	require.NoError(t, sync.PushStatus(context.Background(), "alice", "signed_in"))

	doc := store.docs[docKey(ProfileCollection, "alice")]
	require.NotNil(t, doc)
	assert.Equal(t, "signed_in", doc["status"])
	assert.NotEmpty(t, doc["lastUpdated"])
}

func TestProfileSynchronizer_PushStatusSurfacesWriteFailure(t *testing.T) {
	store := newFakeStore()
	store.writeErr = errors.New("backend down")
	sync := NewProfileSynchronizer(store)

	err := sync.PushStatus(context.Background(), "alice", "signed_in")
	assert.True(t, errors.Is(err, ErrWriteFailed))
}

func TestProfileSynchronizer_DegradedOnSubscribeFailure(t *testing.T) {
	store := newFakeStore()
	store.subscribeErr = errors.New("stream refused")
	sync := NewProfileSynchronizer(store)

	sync.OnIdentityChange(&Identity{ID: "alice"})

	assert.True(t, sync.Degraded())

	// recovery: a later identity change with a working stream clears it
	store.subscribeErr = nil
	sync.OnIdentityChange(&Identity{ID: "alice"})
	assert.False(t, sync.Degraded())
}

func TestProfileSynchronizer_OnChangeHook(t *testing.T) {
	store := newFakeStore()
	sync := NewProfileSynchronizer(store)

	var seen []string
	sync.SetOnChange(func(doc Document, exists bool) {
		status, _ := doc["status"].(string)
		seen = append(seen, status)
	})

	sync.OnIdentityChange(&Identity{ID: "alice"})
	require.NoError(t, store.MergeWrite(context.Background(), ProfileCollection, "alice", Document{"status": "a"}))
	require.NoError(t, store.MergeWrite(context.Background(), ProfileCollection, "alice", Document{"status": "b"}))

	assert.Equal(t, []string{"a", "b"}, seen)
}
