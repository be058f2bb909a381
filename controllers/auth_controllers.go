package controllers

import (
	"ngi/dto"
	"ngi/response"
	"ngi/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{Auth: auth}
}

// Login godoc
// @Summary  Admin sign-in with username and password
// @Tags     auth
// @Param    credentials body dto.LoginInput true "credentials"
// @Success  200 {object} dto.TokenResponse
// @Router   /auth/login [post]
func (a AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := a.Auth.Login(input.Username, input.Password)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, dto.TokenResponse{AccessToken: token, ExpiresIn: int64(a.Auth.TTL().Seconds())})
}

func (a AuthController) LoginGoogle(c *gin.Context) {
	var input dto.GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := a.Auth.LoginGoogle(c.Request.Context(), input.IDToken)
	if err != nil {
		response.AppErrorResponse(c, err)
		return
	}
	response.Success(c, dto.TokenResponse{AccessToken: token, ExpiresIn: int64(a.Auth.TTL().Seconds())})
}
