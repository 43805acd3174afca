package echoapi

import (
	"github.com/arisha-glich/class-gecko-backend/core/discount"
)

// registerDiscountAPI serves the discounts of the caller along with the platform wide ones (no owner).
func registerDiscountAPI(g router, deps handlerDeps, svc *discount.Service) {
	registerOwnedAPI(g, "/discounts", &ownedAPI[discount.Discount, discount.NewDiscount, discount.UpdateDiscount]{
		handlerDeps: deps,
		res:         resource{one: "Discount", many: "Discounts"},
		svc:         svc,
		notFound:    discount.ErrNotFound,
	})
}
