package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/service"
)

// =====================================================
// ADMIN MODERATION HANDLER
// =====================================================

// AdminHandler serves the moderation endpoints. The admin-key
// middleware has already gated the route group.
type AdminHandler struct {
	moderationService service.ModerationService
}

func NewAdminHandler(moderationService service.ModerationService) *AdminHandler {
	return &AdminHandler{
		moderationService: moderationService,
	}
}

// ListPending lists submissions waiting for review
// GET /api/admin/blogs/pending
func (h *AdminHandler) ListPending(c *gin.Context) {
	subs, err := h.moderationService.ListPending(c.Request.Context())
	if err != nil {
		statusCode, errCode := mapBlogError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	blogs := make([]model.SubmissionDTO, 0, len(subs))
	for _, sub := range subs {
		blogs = append(blogs, sub.ToDTO())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(blogs),
		"blogs":   blogs,
	})
}

// ApproveBlog publishes a pending submission
// POST /api/admin/blogs/:id/approve
func (h *AdminHandler) ApproveBlog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid submission ID")
		return
	}

	post, err := h.moderationService.Approve(c.Request.Context(), id)
	if err != nil {
		statusCode, errCode := mapBlogError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Blog approved and published",
		"blog":    post.ToView(),
	})
}

// RejectBlog marks a pending submission rejected
// POST /api/admin/blogs/:id/reject
func (h *AdminHandler) RejectBlog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid submission ID")
		return
	}

	sub, err := h.moderationService.Reject(c.Request.Context(), id)
	if err != nil {
		statusCode, errCode := mapBlogError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Blog rejected",
		"blog":    sub.ToDTO(),
	})
}

// Notifications returns the admin dashboard badge counts
// GET /api/notifications
func (h *AdminHandler) Notifications(c *gin.Context) {
	counts, err := h.moderationService.NotificationCounts(c.Request.Context())
	if err != nil {
		statusCode, errCode := mapBlogError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": counts,
	})
}
