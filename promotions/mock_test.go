package promotions

import (
	"context"
	"sync"

	"admin-console/localstore"
	"admin-console/remote"
)

// memorySlots is an in-memory localstore.Store with an optional write hook.
type memorySlots struct {
	mu    sync.Mutex
	slots map[string][]byte
	PutFn func(name string, value []byte) error
}

func newMemorySlots() *memorySlots {
	return &memorySlots{slots: map[string][]byte{}}
}

func (m *memorySlots) Get(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[name]
	if !ok {
		return nil, localstore.ErrSlotNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memorySlots) Put(ctx context.Context, name string, value []byte) error {
	if m.PutFn != nil {
		if err := m.PutFn(name, value); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[name] = append([]byte(nil), value...)
	return nil
}

func (m *memorySlots) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, name)
	return nil
}

// mockMedia implements MediaAPI. Unset hooks succeed with empty results.
type mockMedia struct {
	mu sync.Mutex

	CreateFn func(in remote.MediaInput) (*remote.Media, error)
	GetFn    func(id string) (*remote.Media, error)
	UpdateFn func(id string, in remote.MediaInput) error
	DeleteFn func(id string) error

	CreateCalls []remote.MediaInput
	GetCalls    []string
	UpdateCalls []string
	DeleteCalls []string
}

func (m *mockMedia) Create(ctx context.Context, in remote.MediaInput) (*remote.Media, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, in)
	m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(in)
	}
	return &remote.Media{ID: "m-default", URL: in.URL}, nil
}

func (m *mockMedia) Get(ctx context.Context, id string) (*remote.Media, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, id)
	m.mu.Unlock()
	if m.GetFn != nil {
		return m.GetFn(id)
	}
	return &remote.Media{ID: id}, nil
}

func (m *mockMedia) Update(ctx context.Context, id string, in remote.MediaInput) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, id)
	m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(id, in)
	}
	return nil
}

func (m *mockMedia) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	return nil
}
