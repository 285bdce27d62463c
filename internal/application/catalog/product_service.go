package catalog

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/bizgrid/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProductService handles product catalog operations. Stock levels are
// mutated here only through the repository's atomic reserve/release
// primitives or an explicit adjustment; status always follows stock.
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, tenantID, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(tenantID, req.SKU, req.Name,
		valueobject.NewMoneyUSD(req.Price), valueobject.NewMoneyUSD(req.Cost))
	if err != nil {
		return nil, err
	}
	product.SetCreatedBy(userID)

	if req.Brand != "" || req.Category != "" {
		product.SetDisplayInfo(req.Brand, req.Category)
	}

	if req.Stock != nil {
		if err := product.SetStockLevels(req.Stock.Current, req.Stock.Minimum, req.Stock.Maximum); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID within the tenant
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySKU retrieves a product by SKU within the tenant
func (s *ProductService) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, tenantID, sku)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Brand != "" {
		domainFilter.Filters["brand"] = filter.Brand
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update updates a product's display, pricing and stock thresholds
func (s *ProductService) Update(ctx context.Context, tenantID, userID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Brand != nil || req.Category != nil {
		brand := product.Brand
		category := product.Category
		if req.Brand != nil {
			brand = *req.Brand
		}
		if req.Category != nil {
			category = *req.Category
		}
		product.SetDisplayInfo(brand, category)
	}
	if req.Price != nil || req.Cost != nil {
		price := product.GetPriceMoney()
		cost := product.GetCostMoney()
		if req.Price != nil {
			price = valueobject.NewMoneyUSD(*req.Price)
		}
		if req.Cost != nil {
			cost = valueobject.NewMoneyUSD(*req.Cost)
		}
		if err := product.SetPricing(price, cost); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStockLevels(req.Stock.Current, req.Stock.Minimum, req.Stock.Maximum); err != nil {
			return nil, err
		}
	}

	product.SetUpdatedBy(userID)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// AdjustStock applies a manual stock adjustment through the atomic
// repository primitives, so the adjustment races safely with reservations
func (s *ProductService) AdjustStock(ctx context.Context, tenantID, productID uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	if req.Quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be zero")
	}

	var err error
	if req.Quantity > 0 {
		err = s.productRepo.ReleaseStock(ctx, tenantID, productID, req.Quantity)
	} else {
		err = s.productRepo.ReserveStock(ctx, tenantID, productID, -req.Quantity, catalog.OversellReject)
	}
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, tenantID, productID)
}

// Delete removes a product from the tenant's catalog
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID); err != nil {
		return err
	}
	return s.productRepo.DeleteForTenant(ctx, tenantID, productID)
}
