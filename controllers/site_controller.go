package controllers

import (
	"ngi/config"
	"ngi/constants"
	"ngi/dto"
	"ngi/response"

	"github.com/gin-gonic/gin"
)

type SiteController struct {
	Config *config.Config
}

func NewSiteController(cfg *config.Config) SiteController {
	return SiteController{Config: cfg}
}

// GetConfig tells the browser which API origin to use for this host
func (s SiteController) GetConfig(c *gin.Context) {
	response.Success(c, dto.ConfigResponse{
		APIBase:  s.Config.APIBase(c.Request.Host),
		Timezone: s.Config.Location().String(),
		Advance:  constants.AdvanceAmount,
	})
}

func (s SiteController) Ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}
