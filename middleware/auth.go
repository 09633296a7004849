package middleware

import (
	"net/http"
	"strings"

	"table-order/models"
	"table-order/utils"

	"github.com/gin-gonic/gin"
)

func TableAuthMiddleware() gin.HandlerFunc {
	return requireRole(utils.RoleTable)
}

func AdminAuthMiddleware() gin.HandlerFunc {
	return requireRole(utils.RoleAdmin)
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired token",
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		if utils.ClaimString(claims, "role") != role {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "Access denied. " + role + " role required",
			})
			c.Abort()
			return
		}

		c.Set("store_id", utils.ClaimInt(claims, "store_id"))
		if role == utils.RoleTable {
			c.Set("table_id", utils.ClaimInt(claims, "table_id"))
			c.Set("table_number", utils.ClaimString(claims, "table_number"))
		} else {
			c.Set("username", utils.ClaimString(claims, "username"))
		}
		c.Next()
	}
}
