package catalog_repo

import (
	"posadmin/internal/domain/catalogs/paymentmethod"
	"posadmin/internal/infrastructure/storage/postgres"
)

const paymentMethodTable = "cat_payment_methods"

// PaymentMethodRepo implements paymentmethod.Repository.
type PaymentMethodRepo struct {
	*BaseCatalogRepo[*paymentmethod.PaymentMethod]
}

// NewPaymentMethodRepo creates a new payment method repository.
func NewPaymentMethodRepo(txm *postgres.TxManager) *PaymentMethodRepo {
	return &PaymentMethodRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*paymentmethod.PaymentMethod](
			txm,
			paymentMethodTable,
			"payment method",
			postgres.ExtractDBColumns[paymentmethod.PaymentMethod](),
			func() *paymentmethod.PaymentMethod { return &paymentmethod.PaymentMethod{} },
			true,
		),
	}
}
