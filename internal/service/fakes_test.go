package service

import (
	"context"
	"errors"
	"sync"

	"github.com/hyjain/hyjain-api/internal/mail"
	"github.com/hyjain/hyjain-api/internal/model"
)

// fakeLocator returns a fixed location and counts calls.
type fakeLocator struct {
	loc   model.Location
	calls []string
}

func (f *fakeLocator) Locate(ctx context.Context, addr string) model.Location {
	f.calls = append(f.calls, addr)
	return f.loc
}

// recordingMailer captures sent messages and optionally fails.
type recordingMailer struct {
	mu   sync.Mutex
	sent []*mail.Message
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, msg *mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// fakeSubscribers records subscriber emails.
type fakeSubscribers struct {
	emails []string
	err    error
}

func (f *fakeSubscribers) CreateSubscriber(ctx context.Context, email string) (*model.Subscriber, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.emails = append(f.emails, email)
	return &model.Subscriber{ID: "sub-1", Email: email}, nil
}

// memoryProducts is an in-memory ProductStore with merge semantics.
type memoryProducts struct {
	mu      sync.Mutex
	nextID  int
	order   []string
	records map[string]map[string]any
	err     error
}

func newMemoryProducts() *memoryProducts {
	return &memoryProducts{records: make(map[string]map[string]any)}
}

func (m *memoryProducts) ListProducts(ctx context.Context) ([]*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*model.Product, 0, len(m.order))
	for _, id := range m.order {
		if fields, ok := m.records[id]; ok {
			out = append(out, &model.Product{ID: id, Fields: copyFields(fields)})
		}
	}
	return out, nil
}

func (m *memoryProducts) CreateProduct(ctx context.Context, fields map[string]any) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	id := "p" + string(rune('0'+m.nextID))
	m.records[id] = model.ProductFields(fields)
	m.order = append(m.order, id)
	return &model.Product{ID: id, Fields: copyFields(m.records[id])}, nil
}

func (m *memoryProducts) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[id]
	if !ok {
		return nil, errProductMissing
	}
	for k, v := range model.ProductFields(fields) {
		rec[k] = v
	}
	return &model.Product{ID: id, Fields: copyFields(rec)}, nil
}

func (m *memoryProducts) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.records, id)
	return nil
}

var errProductMissing = errors.New("product not found")

func copyFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
