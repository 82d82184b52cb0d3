package api

const (
	// pingEndpoint is the path to the liveness check
	pingEndpoint = "/ping"
	// itemsEndpoint is the path to the public catalog listing
	itemsEndpoint = "/items"
	// ordersEndpoint is the path to create a new order
	ordersEndpoint = "/orders"
	// orderEndpoint is the path to the checkout view of an order
	orderEndpoint = "/orders/{orderId}"
	// orderSuccessEndpoint is the path to the success view of an order
	orderSuccessEndpoint = "/orders/{orderId}/success"
	// paymentsConfirmEndpoint is the path to confirm a direct payment
	paymentsConfirmEndpoint = "/payments/confirm"
	// paymentsGiftEndpoint is the path to confirm a gift certificate payment
	paymentsGiftEndpoint = "/payments/gift"
	// paymentsAuthEndpoint is the path to exchange a BrandPay authorization code
	paymentsAuthEndpoint = "/payments/auth"
	// paymentsMethodsEndpoint is the path to list the stored payment methods
	paymentsMethodsEndpoint = "/payments/methods"
)
