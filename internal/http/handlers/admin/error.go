package admin

import (
	"errors"

	handlershared "github.com/palengke/storefront/internal/http/handlers/shared"
	"github.com/palengke/storefront/internal/http/response"
	"github.com/palengke/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError maps a business error onto an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var categoryErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, msg: "category not found"},
	{target: service.ErrInvalidName, code: response.CodeBadRequest, msg: "name required"},
	{target: service.ErrSlugTaken, code: response.CodeConflict, msg: "slug already in use"},
	{target: service.ErrCategoryInUse, code: response.CodeConflict, msg: "category still has products"},
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrCategoryNotFound, code: response.CodeBadRequest, msg: "category not found"},
	{target: service.ErrInvalidName, code: response.CodeBadRequest, msg: "name required"},
	{target: service.ErrInvalidPrice, code: response.CodeBadRequest, msg: "price must not be negative"},
	{target: service.ErrInvalidDiscount, code: response.CodeBadRequest, msg: "discount must be between 0 and 100"},
	{target: service.ErrInvalidStock, code: response.CodeBadRequest, msg: "stock must not be negative"},
	{target: service.ErrSlugTaken, code: response.CodeConflict, msg: "slug already in use"},
}

var orderStatusErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrUnknownStatus, code: response.CodeBadRequest, msg: "unknown order status"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock to restore order"},
}
