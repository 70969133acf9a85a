package menu

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /menu/:id/meal-costs
// --------------------------------------------------
func (h *Handler) MealCosts(c *gin.Context) {
	menuID, err := strconv.Atoi(c.Param("id"))
	if err != nil || menuID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
		return
	}

	result, err := h.service.MealCosts(c.Request.Context(), menuID)
	if err != nil {
		if errors.Is(err, ErrMenuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
