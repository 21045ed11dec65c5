package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
	repo "github.com/nurmatov/onlineshop-api/internal/domain/repository"
	"github.com/nurmatov/onlineshop-api/pkg/helpers"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryExists       = errors.New("category already exists")
	ErrProductNotFound      = errors.New("product not found")
	ErrNotOwner             = errors.New("not the product owner")
	ErrInvalidStars         = errors.New("stars must be between 1 and 5")
	ErrParentReviewNotFound = errors.New("parent review not found")
	ErrParentReviewMismatch = errors.New("parent review belongs to another product")
)

type CatalogService struct {
	Categories repo.CategoryRepository
	Products   repo.ProductRepository
	Ratings    repo.RatingRepository
	Reviews    repo.ReviewRepository
	Users      repo.UserRepository
	GCS        *storage.Client
	GCSBucket  string
	ES         *elasticsearch.Client
	ESIndex    string
	Logger     *logrus.Logger
}

func NewCatalogService(
	categories repo.CategoryRepository,
	products repo.ProductRepository,
	ratings repo.RatingRepository,
	reviews repo.ReviewRepository,
	users repo.UserRepository,
	gcs *storage.Client,
	gcsBucket string,
	es *elasticsearch.Client,
	esIndex string,
	logger *logrus.Logger,
) *CatalogService {
	return &CatalogService{
		Categories: categories,
		Products:   products,
		Ratings:    ratings,
		Reviews:    reviews,
		Users:      users,
		GCS:        gcs,
		GCSBucket:  gcsBucket,
		ES:         es,
		ESIndex:    esIndex,
		Logger:     logger,
	}
}

func (s *CatalogService) CreateCategory(name string) (*entity.Category, error) {
	c := &entity.Category{Name: name}
	if err := s.Categories.Create(c); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCategories() ([]CategoryView, error) {
	cats, err := s.Categories.List()
	if err != nil {
		return nil, err
	}
	out := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, NewCategoryView(c))
	}
	return out, nil
}

type ProductInput struct {
	Name        string
	CategoryID  string
	Price       int64
	Description string
	Active      bool
	VideoURL    string
}

func (s *CatalogService) CreateProduct(ctx context.Context, ownerID string, in ProductInput) (*entity.Product, error) {
	if _, err := s.Categories.GetByID(in.CategoryID); err != nil {
		return nil, ErrCategoryNotFound
	}
	p := &entity.Product{
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Description: in.Description,
		Active:      in.Active,
		VideoURL:    in.VideoURL,
		OwnerID:     ownerID,
	}
	if err := s.Products.Create(p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id, userID string, in ProductInput) (*entity.Product, error) {
	p, err := s.Products.GetByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if p.OwnerID != userID {
		return nil, ErrNotOwner
	}
	if _, err := s.Categories.GetByID(in.CategoryID); err != nil {
		return nil, ErrCategoryNotFound
	}
	p.Name = in.Name
	p.CategoryID = in.CategoryID
	p.Price = in.Price
	p.Description = in.Description
	p.Active = in.Active
	p.VideoURL = in.VideoURL
	if err := s.Products.Update(p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

// DeleteProduct removes the product; the schema cascades to photos, ratings,
// reviews and cart items.
func (s *CatalogService) DeleteProduct(ctx context.Context, id, userID string) error {
	p, err := s.Products.GetByID(id)
	if err != nil {
		return ErrProductNotFound
	}
	if p.OwnerID != userID {
		return ErrNotOwner
	}
	if err := s.Products.Delete(id); err != nil {
		return err
	}
	s.deleteProductIndex(ctx, id)
	return nil
}

// ListProducts shapes the lightweight browsing view; ratings are queried
// fresh per product, never cached.
func (s *CatalogService) ListProducts(categoryID string) ([]ProductListView, error) {
	var (
		products []entity.Product
		err      error
	)
	if categoryID != "" {
		products, err = s.Products.ListByCategory(categoryID)
	} else {
		products, err = s.Products.List()
	}
	if err != nil {
		return nil, err
	}
	out := make([]ProductListView, 0, len(products))
	for _, p := range products {
		ratings, err := s.Ratings.ByProduct(p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, NewProductListView(p, ratings))
	}
	return out, nil
}

// GetProduct assembles the detail view: full category, owner name pair,
// photos, freshly computed rating and the threaded reviews.
func (s *CatalogService) GetProduct(id string) (ProductDetailView, error) {
	p, err := s.Products.GetByID(id)
	if err != nil {
		return ProductDetailView{}, ErrProductNotFound
	}
	category, err := s.Categories.GetByID(p.CategoryID)
	if err != nil {
		return ProductDetailView{}, err
	}
	owner, err := s.Users.GetByID(p.OwnerID)
	if err != nil {
		return ProductDetailView{}, err
	}
	photos, err := s.Products.PhotosByProduct(id)
	if err != nil {
		return ProductDetailView{}, err
	}
	ratings, err := s.Ratings.ByProduct(id)
	if err != nil {
		return ProductDetailView{}, err
	}
	reviews, err := s.Reviews.ByProduct(id)
	if err != nil {
		return ProductDetailView{}, err
	}
	authors := make(map[string]entity.User)
	for _, rv := range reviews {
		if _, ok := authors[rv.AuthorID]; ok {
			continue
		}
		if a, err := s.Users.GetByID(rv.AuthorID); err == nil && a != nil {
			authors[rv.AuthorID] = *a
		}
	}
	return NewProductDetailView(*p, *category, *owner, photos, ratings, reviews, authors), nil
}

// UploadPhoto stores the image in GCS and records the photo row.
func (s *CatalogService) UploadPhoto(ctx context.Context, productID, userID string, r io.Reader, filename, contentType string) (*entity.ProductPhoto, error) {
	p, err := s.Products.GetByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if p.OwnerID != userID {
		return nil, ErrNotOwner
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("product_images", productID, id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	ph := &entity.ProductPhoto{ProductID: productID, ImageURL: url}
	if err := s.Products.AddPhoto(ph); err != nil {
		return nil, err
	}
	return ph, nil
}

// RateProduct records a star value. Duplicate ratings by the same user are
// allowed and all count toward the average.
func (s *CatalogService) RateProduct(productID, userID string, stars int) (*entity.Rating, error) {
	if stars < entity.MinStars || stars > entity.MaxStars {
		return nil, ErrInvalidStars
	}
	if _, err := s.Products.GetByID(productID); err != nil {
		return nil, ErrProductNotFound
	}
	rt := &entity.Rating{ProductID: productID, UserID: userID, Stars: stars}
	if err := s.Ratings.Create(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// AddReview posts a review, optionally as a reply. A reply's parent must be
// a review on the same product.
func (s *CatalogService) AddReview(productID, authorID, text, parentID string) (*entity.Review, error) {
	if _, err := s.Products.GetByID(productID); err != nil {
		return nil, ErrProductNotFound
	}
	if parentID != "" {
		parent, err := s.Reviews.GetByID(parentID)
		if err != nil {
			return nil, ErrParentReviewNotFound
		}
		if parent.ProductID != productID {
			return nil, ErrParentReviewMismatch
		}
	}
	rv := &entity.Review{AuthorID: authorID, Text: text, ProductID: productID, ParentReviewID: parentID}
	if err := s.Reviews.Create(rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *CatalogService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":           p.ID,
		"product_name": p.Name,
		"description":  p.Description,
		"category_id":  p.CategoryID,
		"price":        p.Price,
		"active":       p.Active,
		"date":         p.Date.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *CatalogService) deleteProductIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchProducts performs a multi_match query on name and description.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"product_name^2", "description"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
