package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/id"
	"posadmin/internal/domain/catalogs/product"
	"posadmin/internal/infrastructure/http/v1/dto"
)

// ProductHandler extends the generic catalog handler with stock seeding,
// barcode lookup and variant listing.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates a configured product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) (*product.Product, error) {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) (*product.Product, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},

		MapToDTO: func(entity *product.Product) any {
			return dto.FromProduct(entity)
		},
	}

	return &ProductHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// Create handles POST /products - create product with optional stock seeds.
// Overrides the generic Create so initial stock lands in the same request.
func (h *ProductHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}
	seeds, err := req.Seeds()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.CreateWithStock(ctx, p, seeds); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromProduct(p))
}

// Update handles PUT /products/:id - update product and reorder levels.
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(existing); err != nil {
		h.Error(c, err)
		return
	}
	levels, err := req.Levels()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.UpdateWithReorderLevels(ctx, existing, levels); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(existing))
}

// GetByBarcode handles GET /products/barcode/:barcode.
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	ctx := c.Request.Context()

	barcode := c.Param("barcode")
	if barcode == "" {
		h.Error(c, apperror.NewValidation("barcode is required"))
		return
	}

	p, err := h.service.GetByBarcode(ctx, barcode)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(p))
}

// ListVariants handles GET /products/:id/variants.
func (h *ProductHandler) ListVariants(c *gin.Context) {
	ctx := c.Request.Context()

	parentID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	variants, err := h.service.ListVariants(ctx, parentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(variants))
	for i, v := range variants {
		items[i] = dto.FromProduct(v)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
