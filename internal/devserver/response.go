package devserver

import (
	"context"
	"net/http"

	inHttp "github.com/heram/storefront/internal/http"
)

func writeData(c context.Context, w http.ResponseWriter, data interface{}) {
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"error":      false,
		"data":       data,
	})
}

func writeFail(c context.Context, w http.ResponseWriter, statusCode int, message string) {
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "failed",
		"statusCode": statusCode,
		"error":      true,
		"message":    message,
	})
}
