package handlers

import (
	"posadmin/internal/domain/catalogs/paymentmethod"
	"posadmin/internal/infrastructure/http/v1/dto"
)

// PaymentMethodHTTPHandler is the configured generic handler for payment methods.
type PaymentMethodHTTPHandler = CatalogHandler[
	*paymentmethod.PaymentMethod,
	dto.CreatePaymentMethodRequest,
	dto.UpdatePaymentMethodRequest,
]

// NewPaymentMethodHandler creates a configured payment method handler.
func NewPaymentMethodHandler(base *BaseHandler, service *paymentmethod.Service) *PaymentMethodHTTPHandler {
	config := CatalogHandlerConfig[
		*paymentmethod.PaymentMethod,
		dto.CreatePaymentMethodRequest,
		dto.UpdatePaymentMethodRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "payment method",

		MapCreateDTO: func(req dto.CreatePaymentMethodRequest) (*paymentmethod.PaymentMethod, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdatePaymentMethodRequest, existing *paymentmethod.PaymentMethod) (*paymentmethod.PaymentMethod, error) {
			req.ApplyTo(existing)
			return existing, nil
		},

		MapToDTO: func(entity *paymentmethod.PaymentMethod) any {
			return dto.FromPaymentMethod(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
