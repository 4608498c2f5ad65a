package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the domain's ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("seller does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product's catalog fields. Rating columns are
// untouched here; they move only through AppendReview.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"title":       product.Title,
			"price":       product.Price,
			"description": product.Description,
			"category":    product.Category,
			"image":       product.Image,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product and its reviews.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ReviewModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete product reviews")
		}

		result := tx.Where("id = ?", id).Delete(&model.ProductModel{})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete product")
		}
		if result.RowsAffected == 0 {
			return repository.ErrProductNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product")
	}

	return nil
}

// FindByID retrieves a product with its reviews, newest review first.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at DESC")
		}).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// ListBySeller returns products owned by the given seller, newest first.
func (repo *productRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	var models []model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products by seller")
	}

	return toProductDomainList(models), nil
}

// ListAll returns every product, newest first.
func (repo *productRepository) ListAll(ctx context.Context) ([]*entity.Product, error) {
	var models []model.ProductModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return toProductDomainList(models), nil
}

// ListByCategory returns products in a category, newest first.
func (repo *productRepository) ListByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	var models []model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products by category")
	}

	return toProductDomainList(models), nil
}

// Search returns products whose title or description matches the query,
// case-insensitively.
func (repo *productRepository) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	pattern := "%" + query + "%"

	var models []model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return toProductDomainList(models), nil
}

// AppendReview inserts the review row and folds its rating into the product's
// running aggregate. The aggregate moves in one UPDATE whose expressions all
// read the pre-update row, so concurrent appends serialize on the row lock
// and neither can lose the other's rating.
func (repo *productRepository) AppendReview(ctx context.Context, review *entity.Review) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.ProductModel{}).
			Where("id = ?", review.ProductID).
			Updates(map[string]any{
				"rating_sum":     gorm.Expr("rating_sum + ?", review.Rating),
				"rating_count":   gorm.Expr("rating_count + 1"),
				"average_rating": gorm.Expr("ROUND((rating_sum + ?)::numeric / (rating_count + 1), 2)", review.Rating),
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to update product rating")
		}
		if result.RowsAffected == 0 {
			return repository.ErrProductNotFound
		}

		reviewM := &model.ReviewModel{
			ProductID: review.ProductID,
			UserID:    review.UserID,
			Rating:    review.Rating,
			Comment:   review.Comment,
		}
		if err := tx.Create(reviewM).Error; err != nil {
			return errors.Wrap(err, "failed to insert review")
		}

		review.ID = reviewM.ID
		review.CreatedAt = reviewM.CreatedAt

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append review")
	}

	return nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	reviews := make([]*entity.Review, 0, len(data.Reviews))
	for i := range data.Reviews {
		reviews = append(reviews, toReviewDomain(&data.Reviews[i]))
	}

	return &entity.Product{
		ID:            data.ID,
		Title:         data.Title,
		Price:         data.Price,
		Description:   data.Description,
		Category:      data.Category,
		Image:         data.Image,
		SellerID:      data.SellerID,
		AverageRating: data.AverageRating,
		RatingCount:   data.RatingCount,
		Reviews:       reviews,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toProductDomainList(models []model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(models))
	for i := range models {
		products = append(products, toProductDomain(&models[i]))
	}

	return products
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		Title:       data.Title,
		Price:       data.Price,
		Description: data.Description,
		Category:    data.Category,
		Image:       data.Image,
		SellerID:    data.SellerID,
	}
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
	}
}
