package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/hyjain/hyjain-api/internal/mail"
	"github.com/hyjain/hyjain-api/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryProducts is an in-memory product store with merge-on-update.
type memoryProducts struct {
	mu      sync.Mutex
	seq     int
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
		if rec, ok := m.records[id]; ok {
			out = append(out, &model.Product{ID: id, Fields: clone(rec)})
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
	m.seq++
	id := fmt.Sprintf("prod-%d", m.seq)
	m.records[id] = model.ProductFields(fields)
	m.order = append(m.order, id)
	return &model.Product{ID: id, Fields: clone(m.records[id])}, nil
}

func (m *memoryProducts) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("failed to update product: %w", errNotFound)
	}
	for k, v := range model.ProductFields(fields) {
		rec[k] = v
	}
	return &model.Product{ID: id, Fields: clone(rec)}, nil
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

var errNotFound = errors.New("product not found")

func clone(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type fakeAccounts struct {
	accounts []*model.Account
	err      error
}

func (f *fakeAccounts) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	return f.accounts, f.err
}

type fakeLocator struct {
	loc   model.Location
	addrs []string
}

func (f *fakeLocator) Locate(ctx context.Context, addr string) model.Location {
	f.addrs = append(f.addrs, addr)
	if f.loc.Label == "" {
		return model.Location{Label: model.LocationUnavailable, IP: addr}
	}
	return f.loc
}

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

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeSubscribers struct {
	emails []string
	err    error
}

func (f *fakeSubscribers) CreateSubscriber(ctx context.Context, email string) (*model.Subscriber, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.emails = append(f.emails, email)
	return &model.Subscriber{ID: "sub", Email: email}, nil
}

type fakeImageHost struct {
	calls int
	url   string
	err   error
}

func (f *fakeImageHost) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	f.calls++
	_, _ = io.Copy(io.Discard, r)
	return f.url, f.err
}

type fakeFileHost struct {
	calls    int
	filename string
	data     []byte
	id       string
	err      error
}

func (f *fakeFileHost) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	f.calls++
	f.filename = filename
	f.data = data
	return f.id, f.err
}

func testAccounts() []*model.Account {
	return []*model.Account{
		{ID: "u1", Email: "asha@example.com", DisplayName: "Asha Jain"},
		{ID: "u2", Email: "ravi@example.com"},
	}
}
