// internal/services/inventory_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/proglide/admin-console/internal/catalog"
	"github.com/proglide/admin-console/internal/models"
	"github.com/proglide/admin-console/internal/search"
	"github.com/proglide/admin-console/internal/session"
	"github.com/proglide/admin-console/internal/tags"
	"github.com/proglide/admin-console/internal/upstream"
	"github.com/proglide/admin-console/internal/workspace"
)

var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrSortNotAvailable = errors.New("sort order not available for category")
	ErrProductNotFound  = errors.New("product not found")
)

// UniversalDevices is shown when a product lists no compatible devices.
const UniversalDevices = "Universal"

type InventoryService struct {
	api      ProductAPI
	views    *workspace.Registry
	sessions *session.Manager
	engine   *search.Engine
}

// Card is one product as the grid shows it.
type Card struct {
	ID         string              `json:"id"`
	Category   models.Category     `json:"category"`
	Title      string              `json:"title"`
	Caption    string              `json:"caption"`
	Compatible string              `json:"compatible"`
	Devices    []string            `json:"devices"`
	Specs      []catalog.SpecEntry `json:"specs"`
	Product    models.Product      `json:"product"`
}

type BrowseResult struct {
	Category    models.Category  `json:"category"`
	Query       string           `json:"query"`
	Sort        search.SortOrder `json:"sort"`
	Total       int              `json:"total"`
	Cards       []Card           `json:"cards"`
	Suggestions []string         `json:"suggestions"`
}

type DeviceEditRequest struct {
	Current   string `json:"current" validate:"max=2000"`
	Value     string `json:"value" validate:"required,max=255"`
	EditingID string `json:"editing_id"`
}

type DeviceEditResponse struct {
	Devices string   `json:"devices"`
	Tags    []string `json:"tags"`
}

func NewInventoryService(api ProductAPI, views *workspace.Registry, sessions *session.Manager, engine *search.Engine) *InventoryService {
	return &InventoryService{
		api:      api,
		views:    views,
		sessions: sessions,
		engine:   engine,
	}
}

func NewCard(p models.Product) Card {
	devices := tags.Parse(p.CompatibleDevices)
	compatible := strings.TrimSpace(p.CompatibleDevices)
	if compatible == "" {
		compatible = UniversalDevices
	}
	specs := catalog.ExtraSpecs(p)
	if specs == nil {
		specs = []catalog.SpecEntry{}
	}
	return Card{
		ID:         p.ID,
		Category:   p.Category,
		Title:      catalog.DisplayName(p.Specs),
		Caption:    catalog.Caption(p),
		Compatible: compatible,
		Devices:    devices,
		Specs:      specs,
		Product:    p,
	}
}

// Categories returns every category schema in sidebar order.
func (s *InventoryService) Categories() []catalog.Schema {
	return catalog.All()
}

// Schema returns a category's schema with an empty form.
func (s *InventoryService) Schema(category models.Category) (catalog.Schema, []catalog.FormValue, error) {
	schema, ok := catalog.Lookup(category)
	if !ok {
		return catalog.Schema{}, nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	form, err := catalog.Form(category, models.Specs{})
	if err != nil {
		return catalog.Schema{}, nil, err
	}
	return schema, form, nil
}

// Browse loads the category into the session's view when needed and runs the
// search engine over it.
func (s *InventoryService) Browse(ctx context.Context, sess *session.Session, category models.Category, q search.Query, refresh bool) (*BrowseResult, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	if !q.Sort.ValidFor(category) {
		return nil, fmt.Errorf("%w: %s", ErrSortNotAvailable, q.Sort)
	}

	products, err := s.products(ctx, sess, category, refresh)
	if err != nil {
		return nil, err
	}

	res := s.engine.Run(products, q)
	cards := make([]Card, 0, len(res.Products))
	for _, p := range res.Products {
		cards = append(cards, NewCard(p))
	}

	return &BrowseResult{
		Category:    category,
		Query:       q.Text,
		Sort:        q.Sort,
		Total:       len(products),
		Cards:       cards,
		Suggestions: res.Suggestions,
	}, nil
}

func (s *InventoryService) Create(ctx context.Context, sess *session.Session, input *models.ProductInput) (*models.Product, error) {
	if _, err := s.prepare(ctx, sess, input, ""); err != nil {
		return nil, err
	}

	created, err := s.api.CreateProduct(ctx, sess.Token, input)
	if err != nil {
		return nil, s.writeFailed(sess, "create", err)
	}

	s.views.Get(sess.ID).Prepend(*created)
	logrus.WithFields(logrus.Fields{
		"product_id": created.ID,
		"category":   created.Category,
	}).Info("Product created")
	return created, nil
}

func (s *InventoryService) Update(ctx context.Context, sess *session.Session, id string, input *models.ProductInput) (*models.Product, error) {
	products, err := s.prepare(ctx, sess, input, id)
	if err != nil {
		return nil, err
	}
	if !containsProduct(products, id) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	updated, err := s.api.UpdateProduct(ctx, sess.Token, id, input)
	if err != nil {
		return nil, s.writeFailed(sess, "update", err)
	}

	s.views.Get(sess.ID).Replace(*updated)
	logrus.WithFields(logrus.Fields{
		"product_id": updated.ID,
		"category":   updated.Category,
	}).Info("Product updated")
	return updated, nil
}

func (s *InventoryService) Delete(ctx context.Context, sess *session.Session, category models.Category, id string) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	if err := s.api.DeleteProduct(ctx, sess.Token, id); err != nil {
		return s.writeFailed(sess, "delete", err)
	}

	s.views.Get(sess.ID).Remove(id)
	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"category":   category,
	}).Info("Product deleted")
	return nil
}

// AddDevice appends one device to a tag string, refusing devices already
// listed on another product of the category.
func (s *InventoryService) AddDevice(ctx context.Context, sess *session.Session, category models.Category, req *DeviceEditRequest) (*DeviceEditResponse, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	products, err := s.products(ctx, sess, category, false)
	if err != nil {
		return nil, err
	}

	devices, err := tags.Add(req.Current, req.Value, products, req.EditingID)
	if err != nil {
		return nil, err
	}
	return &DeviceEditResponse{Devices: devices, Tags: tags.Parse(devices)}, nil
}

func (s *InventoryService) RemoveDevice(req *DeviceEditRequest) *DeviceEditResponse {
	devices := tags.Remove(req.Current, req.Value)
	return &DeviceEditResponse{Devices: devices, Tags: tags.Parse(devices)}
}

// prepare validates an input against the category schema and the duplicate
// device rule and returns the list it was checked against.
func (s *InventoryService) prepare(ctx context.Context, sess *session.Session, input *models.ProductInput, editingID string) ([]models.Product, error) {
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, input.Category)
	}
	if err := catalog.ValidateSpecs(input.Category, input.Specs); err != nil {
		return nil, err
	}
	input.CompatibleDevices = tags.Join(tags.Dedupe(tags.Parse(input.CompatibleDevices)))

	products, err := s.products(ctx, sess, input.Category, false)
	if err != nil {
		return nil, err
	}
	if conflicts := tags.FindConflicts(input.CompatibleDevices, products, editingID); len(conflicts) > 0 {
		return nil, conflicts[0]
	}
	return products, nil
}

// products returns the committed list of the view, loading it when the view
// shows another category or a refresh is asked for.
func (s *InventoryService) products(ctx context.Context, sess *session.Session, category models.Category, refresh bool) ([]models.Product, error) {
	view := s.views.Get(sess.ID)
	if !refresh {
		if products, ok := view.Loaded(category); ok {
			return products, nil
		}
	}

	ticket := view.Begin(category)
	products, err := s.api.ListProducts(ctx, category)
	if err != nil {
		if errors.Is(err, upstream.ErrSessionExpired) {
			s.sessions.Logout(sess)
		}
		return nil, fmt.Errorf("failed to load %s products: %w", category, err)
	}

	if err := view.Commit(ticket, products); errors.Is(err, workspace.ErrStaleResponse) {
		logrus.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"category":   category,
			"generation": ticket.Generation,
		}).Debug("Discarded stale product list")
	}
	return products, nil
}

func (s *InventoryService) writeFailed(sess *session.Session, op string, err error) error {
	if errors.Is(err, upstream.ErrSessionExpired) {
		s.sessions.Logout(sess)
	}
	logrus.WithError(err).WithField("operation", op).Warn("Product write failed")
	return fmt.Errorf("failed to %s product: %w", op, err)
}

func containsProduct(products []models.Product, id string) bool {
	for _, p := range products {
		if p.ID == id {
			return true
		}
	}
	return false
}
