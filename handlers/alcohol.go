package handlers

import (
	"net/http"

	"accident-risk-api/alcohol"
	"accident-risk-api/telemetry"

	"github.com/gin-gonic/gin"
)

type AlcoholSearchRequest struct {
	Text string `json:"text" binding:"required,max=200"`
}

type AlcoholHandler struct {
	table *alcohol.Table
}

func NewAlcoholHandler(table *alcohol.Table) *AlcoholHandler {
	return &AlcoholHandler{table: table}
}

func (h *AlcoholHandler) Search(c *gin.Context) {
	var req AlcoholSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, ok := h.table.Search(req.Text)
	telemetry.ObserveAlcoholLookup(ok)
	if !ok {
		body := gin.H{"error": "no matching drink description"}
		if s, found := h.table.Suggest(req.Text); found {
			body["suggestion"] = s
		}
		c.JSON(http.StatusNotFound, body)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Table lists the known descriptions and the legal limits they are judged
// against.
func (h *AlcoholHandler) Table(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": h.table.Version(),
		"limits":  h.table.Limits(),
		"keys":    h.table.Keys(),
	})
}
