package v1

import (
	"net/http"

	"devconnector-backend/internal/delivery/http/response"
	"devconnector-backend/internal/domain"
	"devconnector-backend/pkg/apperror"
	"devconnector-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(public *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	public.POST("/users", handler.Register)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.FormatValidationErrors(err)))
		return
	}

	token, err := h.userUC.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", gin.H{"token": token})
}
