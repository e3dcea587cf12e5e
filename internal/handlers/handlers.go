package handlers

import (
	"net/http"
	"strconv"

	"github.com/festivo/api/internal/helpers"
	"github.com/festivo/api/internal/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentClaims pulls the verified claims set by the auth middleware. On
// failure it writes the response itself and returns ok=false.
func currentClaims(c *gin.Context) (*helpers.Claims, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, false
	}

	claims, ok := userClaims.(*helpers.Claims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return nil, false
	}
	return claims, true
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	claims, ok := currentClaims(c)
	if !ok {
		return primitive.NilObjectID, false
	}

	userId, err := claims.UserObjectID()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
		return primitive.NilObjectID, false
	}
	return userId, true
}

func pathObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	raw := c.Param(param)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid "+param+" format"))
		return primitive.NilObjectID, false
	}
	return id, true
}

func pagination(c *gin.Context) (offset, limit int, ok bool) {
	limitStr := c.DefaultQuery("limit", "20")
	offsetStr := c.DefaultQuery("offset", "0")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
		return 0, 0, false
	}
	offset, err = strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
		return 0, 0, false
	}
	return offset, limit, true
}
