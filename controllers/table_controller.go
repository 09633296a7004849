package controllers

import (
	"net/http"

	"table-order/models"
	"table-order/services"

	"github.com/gin-gonic/gin"
)

type TableController struct {
	tableAuth *services.TableAuthService
}

func NewTableController(tableAuth *services.TableAuthService) *TableController {
	return &TableController{tableAuth: tableAuth}
}

// @Summary Close table session
// @Description End the table's customer session and free the table (Admin)
// @Tags Admin - Tables
// @Security BearerAuth
// @Produce json
// @Param number path string true "Table number"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/tables/{number}/close [post]
func (ctrl *TableController) CloseSession(c *gin.Context) {
	storeID := c.GetInt("store_id")
	tableNumber := c.Param("number")

	table, err := ctrl.tableAuth.CloseSession(c.Request.Context(), storeID, tableNumber, "staff")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Table session closed",
		Data:    table,
	})
}
