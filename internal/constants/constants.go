package constants

const (
	APP_STOREFRONT = "storefront"
	APP_DEV_SERVER = "storefront-devserver"

	AUDIENCE_CUSTOMER = "customer"

	KEY_CACHE_CART             = "cart"
	KEY_CACHE_STEPPER_PROGRESS = "stepperProgress"
)
