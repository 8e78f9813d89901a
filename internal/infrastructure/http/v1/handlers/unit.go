package handlers

import (
	"posadmin/internal/domain/catalogs/unit"
	"posadmin/internal/infrastructure/http/v1/dto"
)

// UnitHTTPHandler is the configured generic handler for units.
type UnitHTTPHandler = CatalogHandler[
	*unit.Unit,
	dto.CreateUnitRequest,
	dto.UpdateUnitRequest,
]

// NewUnitHandler creates a configured unit handler.
func NewUnitHandler(base *BaseHandler, service *unit.Service) *UnitHTTPHandler {
	config := CatalogHandlerConfig[
		*unit.Unit,
		dto.CreateUnitRequest,
		dto.UpdateUnitRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "unit",

		MapCreateDTO: func(req dto.CreateUnitRequest) (*unit.Unit, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateUnitRequest, existing *unit.Unit) (*unit.Unit, error) {
			req.ApplyTo(existing)
			return existing, nil
		},

		MapToDTO: func(entity *unit.Unit) any {
			return dto.FromUnit(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
