package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"ngi/response"
	"ngi/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Export *services.ExportService
}

func NewAnalyticsController(export *services.ExportService) AnalyticsController {
	return AnalyticsController{Export: export}
}

func (a AnalyticsController) GetSummary(c *gin.Context) {
	summary, err := a.Export.Summary(c.Request.Context())
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, summary)
}

// ExportCSV godoc
// @Summary  Download a collection as CSV
// @Tags     admin
// @Param    collection path string true "bookings|leads|reviews|contacts|gallery"
// @Produce  text/csv
// @Router   /admin/export/{collection} [get]
func (a AnalyticsController) ExportCSV(c *gin.Context) {
	collection := c.Param("collection")

	// buffered so a failure still gets a JSON error instead of half a file
	var buf bytes.Buffer
	if err := a.Export.WriteCSV(c.Request.Context(), &buf, collection); err != nil {
		response.AppErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", collection))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
