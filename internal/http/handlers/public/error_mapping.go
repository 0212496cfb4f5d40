package public

import (
	"errors"

	"github.com/palengke/storefront/internal/http/response"
	"github.com/palengke/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error onto an API error response.
// verbatim rules surface the wrapped error text instead of the fixed msg,
// for errors that carry detail such as the offending product name.
type mappedHandlerError struct {
	target   error
	code     int
	msg      string
	verbatim bool
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			msg := rule.msg
			if rule.verbatim && err.Error() != "" {
				msg = err.Error()
			}
			respondError(c, rule.code, msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductNotActive, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock", verbatim: true},
	{target: service.ErrProductNotActive, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrInvalidShippingInfo, code: response.CodeBadRequest, msg: "shipping information incomplete"},
	{target: service.ErrInvalidPayment, code: response.CodeBadRequest, msg: "unsupported payment method"},
}

var orderLifecycleErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderNotCancelable, code: response.CodeBadRequest, msg: "order can no longer be cancelled"},
	{target: service.ErrInvalidTransition, code: response.CodeBadRequest, msg: "status change not allowed"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrOtpNotFound, code: response.CodeBadRequest, msg: "verification code invalid"},
	{target: service.ErrOtpExpired, code: response.CodeBadRequest, msg: "verification code expired"},
	{target: service.ErrOtpMismatch, code: response.CodeBadRequest, msg: "verification code invalid"},
}
