// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"

	"github.com/hyjain/hyjain-api/internal/metrics"
	"github.com/hyjain/hyjain-api/internal/model"
)

// ProductStore is the document-store surface the catalog needs.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]*model.Product, error)
	CreateProduct(ctx context.Context, fields map[string]any) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, fields map[string]any) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CatalogService passes catalog operations through to the product store.
type CatalogService struct {
	store   ProductStore
	metrics metrics.Recorder
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store ProductStore, recorder metrics.Recorder) *CatalogService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CatalogService{store: store, metrics: recorder}
}

// ListProducts returns every product.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	products, err := s.store.ListProducts(ctx)
	s.record("list", err)
	return products, err
}

// CreateProduct stores fields under a new store-assigned id.
func (s *CatalogService) CreateProduct(ctx context.Context, fields map[string]any) (*model.Product, error) {
	product, err := s.store.CreateProduct(ctx, fields)
	s.record("create", err)
	return product, err
}

// UpdateProduct merges fields into product id. The returned product carries
// only the supplied fields, not the full merged record.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*model.Product, error) {
	merged, err := s.store.UpdateProduct(ctx, id, fields)
	s.record("update", err)
	if err != nil {
		return nil, err
	}

	return &model.Product{
		ID:        id,
		Fields:    model.ProductFields(fields),
		CreatedAt: merged.CreatedAt,
		UpdatedAt: merged.UpdatedAt,
	}, nil
}

// DeleteProduct removes product id. Missing ids are not an error.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	err := s.store.DeleteProduct(ctx, id)
	s.record("delete", err)
	return err
}

func (s *CatalogService) record(op string, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	s.metrics.IncProductOperation(op, status)
}

// RootCause returns the innermost wrapped error, which carries the store's own message.
func RootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}
