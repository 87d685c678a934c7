package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suyay-events/suyay-go/internal/service"
	"github.com/suyay-events/suyay-go/internal/service/auth"
)

// @Summary  Register account
// @Param    req body  RegisterRequest true "payload"
// @Success  201 {object} domain.User
// @Failure  409 {object} ErrorResponse "email taken"
// @Router   /auth/register [post]
func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		u, err := svcs.Auth.Register(c.Request.Context(), auth.RegisterInput{
			FirstNames: req.FirstNames,
			LastNames:  req.LastNames,
			Email:      req.Email,
			Password:   req.Password,
			Phone:      req.Phone,
			Gender:     req.Gender,
			AvatarURL:  req.AvatarURL,
			RoleID:     req.RoleID,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, u)
	}
}

// @Summary  Login
// @Param    req body  LoginRequest true "payload"
// @Success  200 {object} TokenResponse
// @Failure  401 {object} ErrorResponse
// @Router   /auth/login [post]
func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		token, u, err := svcs.Auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
			User:        *u,
		})
	}
}

// @Summary  Current account
// @Success  200 {object} domain.User
// @Router   /auth/me [get]
func handleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, currentUser(c))
	}
}
