package controllers

import (
	"time"

	"ngi/constants"
	"ngi/response"
	"ngi/services"
	"ngi/services/logger"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	Uploader services.Uploader
	Logger   logger.Logger
}

func NewUploadController(uploader services.Uploader, log logger.Logger) UploadController {
	if log == nil {
		log = logger.Nop{}
	}
	return UploadController{Uploader: uploader, Logger: log}
}

// UploadIdentity godoc
// @Summary  Store an identity document. A failed upload yields a placeholder id.
// @Tags     uploads
// @Accept   multipart/form-data
// @Param    file formData file true "document"
// @Success  201 {object} services.UploadResult
// @Router   /uploads/identity [post]
func (u UploadController) UploadIdentity(c *gin.Context) {
	fh := identityFile(c)
	if fh == nil {
		response.BadRequest(c, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "Cannot read file")
		return
	}
	defer f.Close()

	res, err := u.Uploader.Upload(c.Request.Context(), f, constants.IdentityUploadFolder)
	if err != nil {
		u.Logger.Error("identity upload failed, using placeholder: %v", err)
		res = services.PlaceholderIdentity(time.Now())
	}
	response.Created(c, res)
}

// UploadProof stores a payment screenshot
func (u UploadController) UploadProof(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "Cannot read file")
		return
	}
	defer f.Close()

	res, err := u.Uploader.Upload(c.Request.Context(), f, constants.ProofUploadFolder)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Created(c, res)
}
