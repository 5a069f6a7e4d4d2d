package service

import (
	"context"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/Indrajitpadhiyar/Bagify/internal/repository"
	pkgdto "github.com/Indrajitpadhiyar/Bagify/pkg/dto"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/Indrajitpadhiyar/Bagify/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductServiceImpl struct {
	trx         repository.TransactionManager
	productRepo repository.ProductRepository
}

func CreateProductService(trx repository.TransactionManager, productRepo repository.ProductRepository) ProductService {
	return &ProductServiceImpl{trx: trx, productRepo: productRepo}
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, user domain.User, data dto.ProductRequest) (product domain.Product, err error) {
	product = domain.Product{
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Category:    data.Category,
		Stock:       data.Stock,
		Images:      data.Images,
		Reviews:     []domain.Review{},
		User:        user.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if product.Images == nil {
		product.Images = []domain.Image{}
	}

	product.ID, err = s.productRepo.AddProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, param pkgdto.Filter) (resp dto.ProductsResponse, err error) {
	param.Normalize()

	resp.ProductsCount, err = s.productRepo.CountProducts(ctx, pkgdto.Filter{})
	if err != nil {
		return
	}

	resp.FilteredProductsCount, err = s.productRepo.CountProducts(ctx, param)
	if err != nil {
		return
	}

	resp.Products, err = s.productRepo.GetProducts(ctx, param)
	if err != nil {
		return
	}

	resp.ResultPerPage = param.Limit

	return resp, nil
}

func (s *ProductServiceImpl) GetAllProducts(ctx context.Context) (data []domain.Product, err error) {
	return s.productRepo.GetAllProducts(ctx)
}

func (s *ProductServiceImpl) GetProductDetails(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := utils.ParseObjectID(id, errs.ErrProductNotFound)
	if err != nil {
		return
	}

	return s.productRepo.GetProductByID(ctx, productID)
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, data dto.ProductRequest) (product domain.Product, err error) {
	productID, err := utils.ParseObjectID(data.ID, errs.ErrProductNotFound)
	if err != nil {
		return
	}

	product, err = s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return
	}

	product.Name = data.Name
	product.Description = data.Description
	product.Price = data.Price
	product.Category = data.Category
	product.Stock = data.Stock
	if data.Images != nil {
		product.Images = data.Images
	}

	if err = s.productRepo.UpdateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := utils.ParseObjectID(id, errs.ErrProductNotFound)
	if err != nil {
		return
	}

	return s.productRepo.DeleteProduct(ctx, productID)
}

// AddReview creates the caller's review or replaces the one they already
// left, then refreshes the rating aggregates.
func (s *ProductServiceImpl) AddReview(ctx context.Context, user domain.User, data dto.ReviewRequest) (err error) {
	productID, err := utils.ParseObjectID(data.ProductID, errs.ErrProductNotFound)
	if err != nil {
		return
	}

	return s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.GetProductByID(ctx, productID)
		if err != nil {
			return err
		}

		reviewed := false
		for i := range product.Reviews {
			if product.Reviews[i].User == user.ID {
				product.Reviews[i].Rating = data.Rating
				product.Reviews[i].Comment = data.Comment
				product.Reviews[i].Name = user.Name
				reviewed = true
				break
			}
		}

		if !reviewed {
			product.Reviews = append(product.Reviews, domain.Review{
				ID:      primitive.NewObjectID(),
				User:    user.ID,
				Name:    user.Name,
				Rating:  data.Rating,
				Comment: data.Comment,
			})
		}

		product.RecomputeRatings()

		return s.productRepo.UpdateProductReviews(ctx, product)
	})
}

func (s *ProductServiceImpl) GetReviews(ctx context.Context, productID string) (reviews []domain.Review, err error) {
	product, err := s.GetProductDetails(ctx, productID)
	if err != nil {
		return
	}

	if product.Reviews == nil {
		return []domain.Review{}, nil
	}

	return product.Reviews, nil
}

func (s *ProductServiceImpl) DeleteReview(ctx context.Context, productID string, reviewID string) (err error) {
	pid, err := utils.ParseObjectID(productID, errs.ErrProductNotFound)
	if err != nil {
		return
	}

	rid, err := utils.ParseObjectID(reviewID, errs.ErrReviewNotFound)
	if err != nil {
		return
	}

	return s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.GetProductByID(ctx, pid)
		if err != nil {
			return err
		}

		kept := make([]domain.Review, 0, len(product.Reviews))
		for _, review := range product.Reviews {
			if review.ID != rid {
				kept = append(kept, review)
			}
		}

		if len(kept) == len(product.Reviews) {
			return errs.ErrReviewNotFound
		}

		product.Reviews = kept
		product.RecomputeRatings()

		return s.productRepo.UpdateProductReviews(ctx, product)
	})
}
