package log

const (
	KEY_ADDRESS_ID      = "addressId"
	KEY_APP_NAME        = "app"
	KEY_CACHE_KEY       = "cacheKey"
	KEY_CART_ID         = "cartId"
	KEY_CART_ITEMS      = "cartItems"
	KEY_CART_ITEM_COUNT = "cartItemCount"
	KEY_CONFIG          = "config"
	KEY_PHONE           = "phone"
	KEY_POLL_INTERVAL   = "pollInterval"
	KEY_PROCESS         = "process"
	KEY_PRODUCT_ID      = "productId"
	KEY_QUANTITY        = "quantity"
	KEY_REQUEST         = "request"
	KEY_REQUEST_BODY    = "requestBody"
	KEY_REQUEST_HEADER  = "requestHeader"
	KEY_REQUEST_HOST    = "host"
	KEY_REQUEST_ID      = "requestId"
	KEY_REQUEST_IP      = "requesterIP"
	KEY_REQUEST_METHOD  = "requestMethod"
	KEY_REQUEST_URI     = "requestURI"
	KEY_REQUEST_URL     = "requestURL"
	KEY_STEP_ID         = "stepId"
	KEY_STEP_INDEX      = "stepIndex"
	KEY_TAG             = "tag"
	KEY_TIER            = "tier"
)
