package public

import (
	"github.com/palengke/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RequestOtpRequest asks for a login code.
type RequestOtpRequest struct {
	Email string `json:"email" binding:"required"`
}

// VerifyOtpRequest exchanges a code for a session token.
type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// RequestOtp sends a one-time login code to the given email.
func (h *Handler) RequestOtp(c *gin.Context) {
	var req RequestOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.AuthService.RequestOtp(req.Email); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "failed to send verification code")
		return
	}

	response.SuccessWithMsg(c, "verification code sent", nil)
}

// VerifyOtp validates the code and signs the caller in.
func (h *Handler) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	result, err := h.AuthService.VerifyOtp(req.Email, req.Code)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "failed to verify code")
		return
	}

	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       result.User,
	})
}

// GetCurrentUser returns the signed-in user profile.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserRepo.GetByID(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load profile", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return
	}

	response.Success(c, user)
}
