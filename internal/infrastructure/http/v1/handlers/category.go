package handlers

import (
	"posadmin/internal/domain/catalogs/category"
	"posadmin/internal/infrastructure/http/v1/dto"
)

// CategoryHTTPHandler is the configured generic handler for categories.
type CategoryHTTPHandler = CatalogHandler[
	*category.Category,
	dto.CreateCategoryRequest,
	dto.UpdateCategoryRequest,
]

// NewCategoryHandler creates a configured category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHTTPHandler {
	config := CatalogHandlerConfig[
		*category.Category,
		dto.CreateCategoryRequest,
		dto.UpdateCategoryRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "category",

		MapCreateDTO: func(req dto.CreateCategoryRequest) (*category.Category, error) {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateCategoryRequest, existing *category.Category) (*category.Category, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},

		MapToDTO: func(entity *category.Category) any {
			return dto.FromCategory(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
