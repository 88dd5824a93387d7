package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tutorhub/internal/errors"
	"tutorhub/internal/model"
	"tutorhub/internal/service"
)

// TutorHandler handles the public tutor directory.
type TutorHandler struct {
	tutorService service.TutorService
}

// NewTutorHandler creates a new tutor handler.
func NewTutorHandler(tutorService service.TutorService) *TutorHandler {
	return &TutorHandler{tutorService: tutorService}
}

// TutorMini is the directory row shape.
type TutorMini struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Subjects   []model.Subject `json:"subjects"`
	HourlyRate int             `json:"hourly_rate"`
	Rating     decimal.Decimal `json:"rating"`
	Bio        string          `json:"bio"`
}

func newTutorMini(user *model.User) TutorMini {
	mini := TutorMini{
		ID:       user.ID,
		Name:     user.FullName(),
		Subjects: []model.Subject{},
	}
	if user.TutorProfile != nil {
		mini.HourlyRate = user.TutorProfile.HourlyRate
		mini.Rating = user.TutorProfile.Rating
		mini.Bio = user.TutorProfile.Bio
		if user.TutorProfile.Subjects != nil {
			mini.Subjects = user.TutorProfile.Subjects
		}
	}
	return mini
}

// List godoc
// @Summary List tutors
// @Tags tutors
// @Produce json
// @Param subject query int false "Filter by subject id"
// @Param search query string false "Substring match over name, username, email and bio"
// @Param ordering query string false "rating | -rating | hourly_rate | -hourly_rate | id | -id"
// @Success 200 {array} TutorMini
// @Failure 500 {object} errors.ErrorResponse
// @Router /tutors [get]
func (h *TutorHandler) List(c echo.Context) error {
	filters := service.TutorFilters{
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}
	if raw := c.QueryParam("subject"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid subject id",
				Code:  "VALIDATION_ERROR",
				Field: "subject",
			})
		}
		filters.SubjectID = uint(id)
	}

	tutors, err := h.tutorService.List(c.Request().Context(), filters)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	out := make([]TutorMini, 0, len(tutors))
	for i := range tutors {
		out = append(out, newTutorMini(&tutors[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Retrieve godoc
// @Summary Tutor detail
// @Tags tutors
// @Produce json
// @Param id path int true "Tutor user id"
// @Success 200 {object} TutorMini
// @Failure 404 {object} errors.ErrorResponse
// @Router /tutors/{id} [get]
func (h *TutorHandler) Retrieve(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "tutor not found",
			Code:  "NOT_FOUND",
		})
	}

	tutor, err := h.tutorService.Retrieve(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, newTutorMini(tutor))
}
