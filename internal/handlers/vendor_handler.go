package handlers

import (
	"net/http"

	"github.com/festivo/api/internal/apperr"
	"github.com/festivo/api/internal/models"
	"github.com/festivo/api/internal/services"
	"github.com/gin-gonic/gin"
)

func RegisterVendor(v *services.VendorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		var req models.VendorCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		vendor, err := v.RegisterVendor(c.Request.Context(), userId, &req)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(vendor, "Vendor profile created, pending approval"))
	}
}

func ListVendors(v *services.VendorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		vendors, err := v.ListVendors(c.Request.Context(), offset, limit)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(vendors, page, limit, len(vendors)))
	}
}

func GetVendor(v *services.VendorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorId, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		vendor, err := v.GetVendorByID(c.Request.Context(), vendorId)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(vendor, ""))
	}
}

func UpdateVendor(v *services.VendorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		var update models.VendorUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		vendor, err := v.UpdateVendor(c.Request.Context(), userId, &update)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(vendor, "Vendor profile updated"))
	}
}

func SetVendorApproval(v *services.VendorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only admins can change vendor approval"))
			return
		}

		vendorId, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		var body struct {
			Approved *bool `json:"approved" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		vendor, err := v.SetApproval(c.Request.Context(), vendorId, *body.Approved)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(vendor, "Vendor approval updated"))
	}
}

// RecomputeVendorStats is the on-demand repair hook for the denormalized
// counters (admin only).
func RecomputeVendorStats(s *services.VendorStatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only admins can recompute vendor stats"))
			return
		}

		vendorId, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		if err := s.Recompute(c.Request.Context(), vendorId); err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Vendor stats recomputed"))
	}
}
