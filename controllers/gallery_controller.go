package controllers

import (
	"ngi/dto"
	"ngi/models"
	"ngi/response"
	"ngi/services"

	"github.com/gin-gonic/gin"
)

type GalleryController struct {
	Gallery *services.GalleryService
}

func NewGalleryController(gallery *services.GalleryService) GalleryController {
	return GalleryController{Gallery: gallery}
}

func (g GalleryController) GetGallery(c *gin.Context) {
	items, err := g.Gallery.List(c.Request.Context(), true)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, items)
}

func (g GalleryController) GetAllGallery(c *gin.Context) {
	items, err := g.Gallery.List(c.Request.Context(), false)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, items)
}

// CreateGalleryItem godoc
// @Summary  Add a photo by URL or by uploading it
// @Tags     gallery
// @Accept   json,multipart/form-data
// @Param    image formData string false "image url"
// @Param    file  formData file   false "image file"
// @Success  201 {object} models.GalleryItem
// @Router   /admin/gallery [post]
func (g GalleryController) CreateGalleryItem(c *gin.Context) {
	var req dto.GalleryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var file interface{}
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, "Cannot read file")
			return
		}
		defer f.Close()
		file = f
	}

	item := &models.GalleryItem{Image: req.Image, Title: req.Title}
	if err := g.Gallery.Create(c.Request.Context(), item, file); err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Created(c, item)
}

func (g GalleryController) ToggleGalleryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := g.Gallery.Toggle(c.Request.Context(), id)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, item)
}

func (g GalleryController) DeleteGalleryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := g.Gallery.Delete(c.Request.Context(), id); err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, dto.SuccessResponse{Success: true})
}
