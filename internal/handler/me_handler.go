package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tutorhub/internal/errors"
	"tutorhub/internal/model"
	"tutorhub/internal/service"
)

// MeHandler handles the profile projection endpoints.
type MeHandler struct {
	profileService service.ProfileService
}

// NewMeHandler creates a new profile handler.
func NewMeHandler(profileService service.ProfileService) *MeHandler {
	return &MeHandler{profileService: profileService}
}

// TutorProfileView is the tutor sub-object of the profile projection.
type TutorProfileView struct {
	Bio        string          `json:"bio"`
	HourlyRate int             `json:"hourly_rate"`
	Rating     decimal.Decimal `json:"rating"`
	Subjects   []model.Subject `json:"subjects"`
}

// StudentProfileView is the student sub-object of the profile projection.
type StudentProfileView struct {
	GradeLevel string `json:"grade_level"`
}

// MeResponse merges user identity with the role-specific profile.
type MeResponse struct {
	ID             uint                `json:"id"`
	Email          string              `json:"email"`
	Username       string              `json:"username"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	Role           string              `json:"role"`
	TutorProfile   *TutorProfileView   `json:"tutorprofile"`
	StudentProfile *StudentProfileView `json:"studentprofile"`
}

// MeUpdateRequest carries the partial profile fields of a PATCH. Fields not
// legal for the caller's role are ignored.
type MeUpdateRequest struct {
	Bio        *string `json:"bio"`
	HourlyRate *int    `json:"hourly_rate"`
	GradeLevel *string `json:"grade_level"`
	Subjects   *[]uint `json:"subjects"`
}

func newMeResponse(user *model.User) MeResponse {
	resp := MeResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}
	if user.TutorProfile != nil {
		subjects := user.TutorProfile.Subjects
		if subjects == nil {
			subjects = []model.Subject{}
		}
		resp.TutorProfile = &TutorProfileView{
			Bio:        user.TutorProfile.Bio,
			HourlyRate: user.TutorProfile.HourlyRate,
			Rating:     user.TutorProfile.Rating,
			Subjects:   subjects,
		}
	}
	if user.StudentProfile != nil {
		resp.StudentProfile = &StudentProfileView{GradeLevel: user.StudentProfile.GradeLevel}
	}
	return resp
}

// Get godoc
// @Summary Current user's profile projection
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *MeHandler) Get(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}

	user, err := h.profileService.Get(c.Request().Context(), caller.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, newMeResponse(user))
}

// Update godoc
// @Summary Partially update the current user's profile
// @Tags me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MeUpdateRequest true "Partial profile fields"
// @Success 200 {object} MeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [patch]
func (h *MeHandler) Update(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}

	var req MeUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	patch := service.ProfileUpdate{
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
		GradeLevel: req.GradeLevel,
		Subjects:   req.Subjects,
	}

	user, err := h.profileService.Update(c.Request().Context(), caller, patch)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, newMeResponse(user))
}
