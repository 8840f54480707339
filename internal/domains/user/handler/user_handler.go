package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bloghub-backend/internal/domains/user/model"
	"bloghub-backend/internal/domains/user/service"
)

// =====================================================
// USER HANDLER
// =====================================================

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func respondError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func mapUserError(err error) (int, string) {
	if userErr, ok := err.(*model.UserError); ok {
		switch userErr.Code {
		case model.ErrCodeValidation:
			return http.StatusBadRequest, userErr.Code
		case model.ErrCodeEmailExists:
			return http.StatusConflict, userErr.Code
		case model.ErrCodeInvalidCredentials:
			return http.StatusUnauthorized, userErr.Code
		case model.ErrCodeNotApproved:
			return http.StatusForbidden, userErr.Code
		case model.ErrCodeUserNotFound:
			return http.StatusNotFound, userErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// =====================================================
// AUTH ENDPOINTS
// =====================================================

// Signup registers a new account pending admin approval
// POST /api/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, model.ErrCodeValidation, "Invalid request body")
		return
	}

	dto, err := h.userService.Signup(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created, awaiting admin approval",
		"user":    dto,
	})
}

// Login authenticates an approved user
// POST /api/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, model.ErrCodeValidation, "Invalid request body")
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    resp.User,
		"tokens": gin.H{
			"accessToken":  resp.AccessToken,
			"refreshToken": resp.RefreshToken,
		},
	})
}

// Me returns the authenticated caller's profile
// GET /api/me
func (h *UserHandler) Me(c *gin.Context) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token subject")
		return
	}

	dto, err := h.userService.Profile(c.Request.Context(), id)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto,
	})
}

// =====================================================
// ADMIN APPROVAL ENDPOINTS
// =====================================================

// ListUsers lists every account
// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		statusCode, errCode := mapUserError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(dtos),
		"users":   dtos,
	})
}

// ListPending lists accounts waiting for approval
// GET /api/admin/users/pending
func (h *UserHandler) ListPending(c *gin.Context) {
	users, err := h.userService.ListPendingApproval(c.Request.Context())
	if err != nil {
		statusCode, errCode := mapUserError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(dtos),
		"users":   dtos,
	})
}

// ApproveUser approves a pending account
// POST /api/admin/users/:id/approve
func (h *UserHandler) ApproveUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	u, err := h.userService.Approve(c.Request.Context(), id)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User approved",
		"user":    u.ToDTO(),
	})
}

// RejectUser removes a pending account
// POST /api/admin/users/:id/reject
func (h *UserHandler) RejectUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.userService.Reject(c.Request.Context(), id); err != nil {
		statusCode, errCode := mapUserError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User rejected and removed",
	})
}
