package v1

import (
	"net/http"
	"time"

	"devconnector-backend/internal/delivery/http/response"
	"devconnector-backend/internal/domain"
	"devconnector-backend/pkg/apperror"
	"devconnector-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(public *gin.RouterGroup, protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	// Public Routes
	public.GET("/profile", handler.List)
	public.GET("/profile/user/:user_id", handler.GetByUserID)

	// Protected Routes
	protected.GET("/profile/me", handler.Me)
	protected.POST("/profile", handler.Upsert)
	protected.DELETE("/profile", handler.DeleteOwner)
	protected.PUT("/profile/experience", handler.AddExperience)
	protected.DELETE("/profile/experience/:exp_id", handler.RemoveExperience)
	protected.PUT("/profile/education", handler.AddEducation)
	protected.DELETE("/profile/education/:edu_id", handler.RemoveEducation)
}

// UpsertProfileRequest is a sparse field set: nil fields are left untouched
// on an existing profile. Skills arrive as a comma-delimited string.
type UpsertProfileRequest struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	Status         *string `json:"status" binding:"required"`
	GithubUsername *string `json:"githubusername"`
	Skills         *string `json:"skills" binding:"required"`
	Youtube        *string `json:"youtube"`
	Facebook       *string `json:"facebook"`
	Instagram      *string `json:"instagram"`
	Twitter        *string `json:"twitter"`
	Linkedin       *string `json:"linkedin"`
}

func (r *UpsertProfileRequest) toPatch() *domain.ProfilePatch {
	patch := &domain.ProfilePatch{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Bio:            r.Bio,
		Status:         r.Status,
		GithubUsername: r.GithubUsername,
		Social: domain.SocialLinks{
			Youtube:   r.Youtube,
			Facebook:  r.Facebook,
			Instagram: r.Instagram,
			Twitter:   r.Twitter,
			Linkedin:  r.Linkedin,
		},
	}
	if r.Skills != nil {
		patch.Skills = domain.ParseSkills(*r.Skills)
	}
	return patch
}

type ExperienceRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    *string    `json:"location"`
	From        time.Time  `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description *string    `json:"description"`
}

type EducationRequest struct {
	School       string     `json:"school" binding:"required"`
	Degree       string     `json:"degree" binding:"required"`
	FieldOfStudy string     `json:"fieldOfStudy" binding:"required"`
	From         time.Time  `json:"from" binding:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  *string    `json:"description"`
}

func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "All profiles", profiles)
}

func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	profile, err := h.profileUC.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile details", profile)
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile details", profile)
}

func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.FormatValidationErrors(err)))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	profile, err := h.profileUC.Upsert(c.Request.Context(), userID, req.toPatch())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile saved", profile)
}

func (h *ProfileHandler) DeleteOwner(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.profileUC.DeleteOwner(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted", nil)
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.FormatValidationErrors(err)))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	exp := domain.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	profile, err := h.profileUC.AddExperience(c.Request.Context(), userID, exp)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience added", profile)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.RemoveExperience(c.Request.Context(), userID, c.Param("exp_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience removed", profile)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.FormatValidationErrors(err)))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	edu := domain.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	profile, err := h.profileUC.AddEducation(c.Request.Context(), userID, edu)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education added", profile)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.RemoveEducation(c.Request.Context(), userID, c.Param("edu_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education removed", profile)
}
