package state

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
)

const waitFor = 2 * time.Second

// recordingBackend wraps a backend, records calls and injects failures.
type recordingBackend struct {
	docstore.Backend

	mu         sync.Mutex
	sets       []string
	updates    []string
	failSet    error
	failUpd    error
	failDel    error
	failCrt    error
	createGate chan struct{}
}

func (b *recordingBackend) Set(ctx context.Context, collection, id string, data any) error {
	b.mu.Lock()
	b.sets = append(b.sets, collection+"/"+id)
	fail := b.failSet
	b.mu.Unlock()

	if fail != nil {
		return fail
	}

	return b.Backend.Set(ctx, collection, id, data)
}

func (b *recordingBackend) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	b.mu.Lock()
	b.updates = append(b.updates, collection+"/"+id)
	fail := b.failUpd
	b.mu.Unlock()

	if fail != nil {
		return fail
	}

	return b.Backend.Update(ctx, collection, id, fields)
}

func (b *recordingBackend) Delete(ctx context.Context, collection, id string) error {
	b.mu.Lock()
	fail := b.failDel
	b.mu.Unlock()

	if fail != nil {
		return fail
	}

	return b.Backend.Delete(ctx, collection, id)
}

func (b *recordingBackend) Create(ctx context.Context, collection string, data any) (string, error) {
	b.mu.Lock()
	fail, gate := b.failCrt, b.createGate
	b.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if fail != nil {
		return "", fail
	}

	return b.Backend.Create(ctx, collection, data)
}

func (b *recordingBackend) setCalls(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, s := range b.sets {
		if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
			n++
		}
	}

	return n
}

func (b *recordingBackend) fail(set, upd, del error) {
	b.mu.Lock()
	b.failSet, b.failUpd, b.failDel = set, upd, del
	b.mu.Unlock()
}

// openStore opens a store on backend and closes it when the test ends.
func openStore(t *testing.T, backend docstore.Backend, opts ...Option) *Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	s := New(backend, opts...)
	require.NoError(t, s.Open(ctx))

	t.Cleanup(s.Close)

	return s
}

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	return raw
}

func storedFields(t *testing.T, mem *docstore.Memory, collection, id string) map[string]any {
	t.Helper()

	for _, d := range mem.Documents(collection) {
		if d.ID == id {
			out := make(map[string]any)
			require.NoError(t, json.Unmarshal(d.Data, &out))

			return out
		}
	}

	return nil
}
