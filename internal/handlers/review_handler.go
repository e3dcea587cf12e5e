package handlers

import (
	"net/http"

	"github.com/festivo/api/internal/apperr"
	"github.com/festivo/api/internal/models"
	"github.com/festivo/api/internal/services"
	"github.com/gin-gonic/gin"
)

func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		var req models.ReviewCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		review, err := r.CreateReview(c.Request.Context(), userId, &req)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(review, "Review created successfully"))
	}
}

func GetVendorReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorId, ok := pathObjectID(c, "vendor_id")
		if !ok {
			return
		}

		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		reviews, err := r.GetReviewsByVendor(c.Request.Context(), vendorId, offset, limit)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}

func GetMyReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		reviews, err := r.GetReviewsByUser(c.Request.Context(), userId, offset, limit)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}

func DeleteReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only admins can delete reviews"))
			return
		}

		reviewId, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		if err := r.DeleteReview(c.Request.Context(), reviewId); err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Review deleted"))
	}
}
