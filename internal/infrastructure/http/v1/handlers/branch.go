package handlers

import (
	"posadmin/internal/domain/catalogs/branch"
	"posadmin/internal/infrastructure/http/v1/dto"
)

// BranchHTTPHandler is the configured generic handler for branches.
type BranchHTTPHandler = CatalogHandler[
	*branch.Branch,
	dto.CreateBranchRequest,
	dto.UpdateBranchRequest,
]

// NewBranchHandler creates a configured branch handler.
func NewBranchHandler(base *BaseHandler, service *branch.Service) *BranchHTTPHandler {
	config := CatalogHandlerConfig[
		*branch.Branch,
		dto.CreateBranchRequest,
		dto.UpdateBranchRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "branch",

		MapCreateDTO: func(req dto.CreateBranchRequest) (*branch.Branch, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateBranchRequest, existing *branch.Branch) (*branch.Branch, error) {
			req.ApplyTo(existing)
			return existing, nil
		},

		MapToDTO: func(entity *branch.Branch) any {
			return dto.FromBranch(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
