package demand

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /demand/generate
// --------------------------------------------------
func (h *Handler) Generate(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// --------------------------------------------------
// POST /demand/generate-multi (menu filter + menu count)
// --------------------------------------------------
func (h *Handler) GenerateMulti(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	result, err := h.service.GenerateMulti(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// --------------------------------------------------
// POST /demand/export-excel
// --------------------------------------------------
func (h *Handler) ExportExcel(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	data, filename, err := h.service.ExportExcel(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// bindRequest decodes and validates the request body; on failure it writes
// the 400 itself and reports ok=false.
func bindRequest(c *gin.Context) (*Request, bool) {
	var req Request
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, false
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &req, true
}
