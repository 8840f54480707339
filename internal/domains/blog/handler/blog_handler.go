package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/service"
)

// =====================================================
// BLOG HANDLER
// =====================================================

type BlogHandler struct {
	admissionService service.AdmissionService
	feedService      service.FeedService
}

func NewBlogHandler(
	admissionService service.AdmissionService,
	feedService service.FeedService,
) *BlogHandler {
	return &BlogHandler{
		admissionService: admissionService,
		feedService:      feedService,
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

func mapBlogError(err error) (int, string) {
	if blogErr, ok := err.(*model.BlogError); ok {
		switch blogErr.Code {
		case model.ErrCodeValidation:
			return http.StatusBadRequest, blogErr.Code
		case model.ErrCodeSubmissionNotFound, model.ErrCodePostNotFound:
			return http.StatusNotFound, blogErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// =====================================================
// SUBMISSION ENDPOINT
// =====================================================

// SubmitBlog accepts a new blog submission
// POST /api/blogs
func (h *BlogHandler) SubmitBlog(c *gin.Context) {
	// Step 1: Bind request body
	var req model.SubmitBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, model.ErrCodeValidation, "Invalid request body")
		return
	}

	// Step 2: Run the admission pipeline. Header key wins over body key.
	result, err := h.admissionService.Submit(c.Request.Context(), req, c.GetHeader("x-request-id"))
	if err != nil {
		statusCode, errCode := mapBlogError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	// Step 3: Respond. A deduped submit replays the original outcome
	// with 202 instead of 201.
	statusCode := http.StatusCreated
	message := "Blog submitted for review"
	if result.Deduped {
		statusCode = http.StatusAccepted
		message = "Duplicate submission, returning existing record"
	}

	c.JSON(statusCode, gin.H{
		"success": true,
		"deduped": result.Deduped,
		"message": message,
		"blog":    result.Submission.ToDTO(),
	})
}

// =====================================================
// PUBLIC FEED ENDPOINTS
// =====================================================

// ListBlogs lists published posts, plus the caller's own queue
// GET /api/blogs?userEmail=
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	views, err := h.feedService.List(c.Request.Context(), c.Query("userEmail"))
	if err != nil {
		statusCode, errCode := mapBlogError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(views),
		"blogs":   views,
	})
}

// GetBlog gets one published post
// GET /api/blogs/:id
func (h *BlogHandler) GetBlog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid blog ID")
		return
	}

	post, err := h.feedService.GetByID(c.Request.Context(), id)
	if err != nil {
		statusCode, errCode := mapBlogError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"blog":    post.ToView(),
	})
}

// LikeBlog increments the like counter
// POST /api/blogs/:id/like
func (h *BlogHandler) LikeBlog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid blog ID")
		return
	}

	likes, err := h.feedService.Like(c.Request.Context(), id)
	if err != nil {
		statusCode, errCode := mapBlogError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"likes":   likes,
	})
}
