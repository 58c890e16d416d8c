package handler

import (
	"errors"

	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context) {
	var req model.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "registration_validation")
		utils.BadRequest(c, "invalid request")
		return
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	userService := usecase.NewUserService(repository.GetUserRepo(utils.MongoClient))

	if err := userService.CreateUser(c.Request.Context(), user); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			utils.Conflict(c, "username already exists")
		case errors.Is(err, usecase.ErrEmailTaken):
			utils.Conflict(c, "email already exists")
		default:
			utils.BadRequest(c, "invalid request")
		}
		return
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate refresh token")
		return
	}

	utils.TrackAuthAttempt("success", "registration")
	utils.Created(c, gin.H{
		"message": "user registered successfully",
		"token":   token,
		"refresh": refreshToken,
	})
}
