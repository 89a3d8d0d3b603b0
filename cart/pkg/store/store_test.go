package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heram/storefront/internal/api"
	"github.com/heram/storefront/internal/cache"
	"github.com/heram/storefront/internal/token"
)

type spyNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *spyNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *spyNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	messages := make([]string, len(n.messages))
	copy(messages, n.messages)
	return messages
}

type countingServer struct {
	mu       sync.Mutex
	counts   map[string]int
	cartBody string
	failAll  bool
}

func newCountingServer() *countingServer {
	return &countingServer{
		counts:   map[string]int{},
		cartBody: `{"cart":[]}`,
	}
}

func (s *countingServer) count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[method]
}

func (s *countingServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.counts[r.Method]++
		cartBody := s.cartBody
		failAll := s.failAll
		s.mu.Unlock()

		if failAll {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"status":"failed","error":true,"message":"something broke"}`))
			return
		}
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"status":"success","error":false,"data":` + cartBody + `}`))
			return
		}
		w.Write([]byte(`{"status":"success","error":false}`))
	})
}

func newTestStore(
	t *testing.T,
	backend *countingServer,
	tokenString string,
	undoWindow time.Duration,
) (*Store, *spyNotifier, *cache.MemoryMirror) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	tokens := token.NewStaticSource(tokenString)
	notifier := &spyNotifier{}
	mirror := cache.NewMemoryMirror()
	s := NewStore(api.NewClient(server.URL, tokens), tokens, mirror, notifier, undoWindow)
	return s, notifier, mirror
}

func TestFetchWithoutTokenIsNoOp(t *testing.T) {
	backend := newCountingServer()
	s, _, _ := newTestStore(t, backend, "", 0)

	s.Fetch(context.Background())

	assert.Equal(t, 0, backend.count(http.MethodGet))
	assert.True(t, s.Empty())
}

func TestFetchReplacesItems(t *testing.T) {
	backend := newCountingServer()
	backend.cartBody = `{"cart":[{"id":"c1","quantity":2},{"id":"c2","quantity":1}]}`
	s, _, _ := newTestStore(t, backend, "test-token", 0)

	s.Fetch(context.Background())

	assert.Len(t, s.Items(), 2)
	assert.False(t, s.Empty())
}

func TestFetchFailureResetsToEmpty(t *testing.T) {
	backend := newCountingServer()
	backend.cartBody = `{"cart":[{"id":"c1","quantity":2}]}`
	s, _, _ := newTestStore(t, backend, "test-token", 0)

	s.Fetch(context.Background())
	assert.Len(t, s.Items(), 1)

	backend.mu.Lock()
	backend.failAll = true
	backend.mu.Unlock()
	s.Fetch(context.Background())

	// a failed fetch is indistinguishable from an empty cart
	assert.True(t, s.Empty())
}

func TestAddWithoutTokenNotifies(t *testing.T) {
	backend := newCountingServer()
	s, notifier, _ := newTestStore(t, backend, "", 0)

	s.Add(context.Background(), "prod-espresso")

	assert.Equal(t, 0, backend.count(http.MethodPost))
	assert.Contains(t, notifier.all(), "please sign in first")
}

func TestAddReconcilesByRefetch(t *testing.T) {
	backend := newCountingServer()
	backend.cartBody = `{"cart":[{"id":"c1","quantity":1}]}`
	s, notifier, _ := newTestStore(t, backend, "test-token", 0)

	s.Add(context.Background(), "prod-espresso")

	assert.Equal(t, 1, backend.count(http.MethodPost))
	assert.Equal(t, 1, backend.count(http.MethodGet))
	assert.Len(t, s.Items(), 1)
	assert.Empty(t, notifier.all())
}

func TestAddFailureNotifiesWithoutRefetch(t *testing.T) {
	backend := newCountingServer()
	backend.failAll = true
	s, notifier, _ := newTestStore(t, backend, "test-token", 0)

	s.Add(context.Background(), "prod-espresso")

	assert.Equal(t, 1, backend.count(http.MethodPost))
	assert.Equal(t, 0, backend.count(http.MethodGet))
	assert.Contains(t, notifier.all(), "something broke")
}

func TestUpdateQuantityDecrementFromOneDelegatesToRemove(t *testing.T) {
	backend := newCountingServer()
	s, _, _ := newTestStore(t, backend, "test-token", 0)

	s.UpdateQuantity(context.Background(), "c1", 0, 1)

	// exactly one DELETE and no PATCH to zero
	assert.Equal(t, 1, backend.count(http.MethodDelete))
	assert.Equal(t, 0, backend.count(http.MethodPatch))
}

func TestUpdateQuantityPatches(t *testing.T) {
	backend := newCountingServer()
	s, _, _ := newTestStore(t, backend, "test-token", 0)

	s.UpdateQuantity(context.Background(), "c1", 3, 2)

	assert.Equal(t, 1, backend.count(http.MethodPatch))
	assert.Equal(t, 0, backend.count(http.MethodDelete))
}

func TestUpdateQuantityRejectsZeroWithoutDelegation(t *testing.T) {
	backend := newCountingServer()
	s, notifier, _ := newTestStore(t, backend, "test-token", 0)

	// zero quantity on a multi-unit line fails validation, nothing is sent
	s.UpdateQuantity(context.Background(), "c1", 0, 3)

	assert.Equal(t, 0, backend.count(http.MethodPatch))
	assert.Equal(t, 0, backend.count(http.MethodDelete))
	assert.NotEmpty(t, notifier.all())
}

func TestRemoveWithUndoFiresAfterWindow(t *testing.T) {
	backend := newCountingServer()
	s, _, _ := newTestStore(t, backend, "test-token", 30*time.Millisecond)

	s.RemoveWithUndo(context.Background(), "c1")

	assert.True(t, s.RemovalPending("c1"))
	assert.Equal(t, 0, backend.count(http.MethodDelete))

	assert.Eventually(t, func() bool {
		return backend.count(http.MethodDelete) == 1
	}, time.Second, 5*time.Millisecond)
	assert.False(t, s.RemovalPending("c1"))
}

func TestCancelRemoveAbortsPendingRemoval(t *testing.T) {
	backend := newCountingServer()
	s, _, _ := newTestStore(t, backend, "test-token", 30*time.Millisecond)

	s.RemoveWithUndo(context.Background(), "c1")
	assert.True(t, s.CancelRemove(context.Background(), "c1"))
	assert.False(t, s.RemovalPending("c1"))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, backend.count(http.MethodDelete))
}

func TestCancelRemoveWithoutPendingRemoval(t *testing.T) {
	backend := newCountingServer()
	s, _, _ := newTestStore(t, backend, "test-token", 0)

	assert.False(t, s.CancelRemove(context.Background(), "c1"))
}

func TestLoadingFlagClearsAfterMutation(t *testing.T) {
	backend := newCountingServer()
	s, _, _ := newTestStore(t, backend, "test-token", 0)

	assert.False(t, s.Loading("prod-espresso"))
	s.Add(context.Background(), "prod-espresso")
	assert.False(t, s.Loading("prod-espresso"))
}
