package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/palengke/storefront/internal/http/handlers/shared"
	"github.com/palengke/storefront/internal/http/response"
	"github.com/palengke/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers lists registered users.
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:      page,
		PageSize:  pageSize,
		Keyword:   strings.TrimSpace(c.Query("keyword")),
		AdminOnly: c.Query("admin_only") == "1",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load users", err)
		return
	}

	response.SuccessWithPage(c, users, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminUserRequest toggles the admin flag on a user.
type AdminUserRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// UpdateAdminUser promotes or demotes a user. Admins cannot demote
// themselves.
func (h *Handler) UpdateAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	callerID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	if callerID == id && !*req.IsAdmin {
		respondError(c, response.CodeConflict, "cannot demote yourself", nil)
		return
	}

	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load user", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}
	if err := h.UserRepo.SetAdmin(id, *req.IsAdmin); err != nil {
		respondError(c, response.CodeInternal, "failed to update user", err)
		return
	}
	user.IsAdmin = *req.IsAdmin
	response.Success(c, user)
}

// DeleteAdminUser removes a user account. Admins cannot delete themselves.
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	callerID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	if callerID == id {
		respondError(c, response.CodeConflict, "cannot delete yourself", nil)
		return
	}

	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load user", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}
	if err := h.UserRepo.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "failed to delete user", err)
		return
	}
	response.SuccessWithMsg(c, "user deleted", nil)
}
