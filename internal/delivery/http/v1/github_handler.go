package v1

import (
	"net/http"

	"devconnector-backend/internal/delivery/http/response"
	"devconnector-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type GithubHandler struct {
	githubUC domain.GithubUsecase
}

func NewGithubHandler(public *gin.RouterGroup, githubUC domain.GithubUsecase) {
	handler := &GithubHandler{githubUC: githubUC}

	public.GET("/profile/github/:username", handler.ListRepos)
}

func (h *GithubHandler) ListRepos(c *gin.Context) {
	repos, err := h.githubUC.ListRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Github repositories", repos)
}
