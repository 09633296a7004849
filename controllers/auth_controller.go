package controllers

import (
	"errors"
	"net/http"

	"table-order/models"
	"table-order/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	adminAuth *services.AdminAuthService
	tableAuth *services.TableAuthService
}

func NewAuthController(adminAuth *services.AdminAuthService, tableAuth *services.TableAuthService) *AuthController {
	return &AuthController{
		adminAuth: adminAuth,
		tableAuth: tableAuth,
	}
}

// @Summary Admin login
// @Description Authenticate a store admin and issue a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.AdminLoginRequest true "Credentials"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/admin/login [post]
func (ctrl *AuthController) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	store, token, err := ctrl.adminAuth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid username or password",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Login failed",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Data: models.LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			StoreID:     store.ID,
		},
	})
}

// @Summary Table login
// @Description Authenticate a table device and open its session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.TableLoginRequest true "Store and table number"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /auth/table/login [post]
func (ctrl *AuthController) TableLogin(c *gin.Context) {
	var req models.TableLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	table, token, err := ctrl.tableAuth.Login(c.Request.Context(), req.StoreID, req.TableNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Data: models.LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			StoreID:     table.StoreID,
			TableID:     table.ID,
		},
	})
}
