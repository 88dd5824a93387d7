package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"tutorhub/internal/errors"
	"tutorhub/internal/model"
	"tutorhub/internal/service"
)

// LessonRequestHandler handles the lesson-request workflow endpoints.
type LessonRequestHandler struct {
	lessonService service.LessonRequestService
}

// NewLessonRequestHandler creates a new lesson request handler.
func NewLessonRequestHandler(lessonService service.LessonRequestService) *LessonRequestHandler {
	return &LessonRequestHandler{lessonService: lessonService}
}

// CreateLessonRequestRequest represents a new lesson request.
type CreateLessonRequestRequest struct {
	TutorID         uint      `json:"tutor_id" validate:"required"`
	SubjectID       uint      `json:"subject_id" validate:"required"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required"`
	Note            string    `json:"note"`
}

// UpdateLessonRequestRequest carries a status decision.
type UpdateLessonRequestRequest struct {
	Status string `json:"status" validate:"required"`
}

// LessonRequestView is the list/detail row shape.
type LessonRequestView struct {
	ID              uint          `json:"id"`
	StudentEmail    string        `json:"student_email"`
	TutorEmail      string        `json:"tutor_email"`
	Subject         model.Subject `json:"subject"`
	StartTime       time.Time     `json:"start_time"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          string        `json:"status"`
	Note            string        `json:"note"`
	CreatedAt       time.Time     `json:"created_at"`
}

func newLessonRequestView(request *model.LessonRequest) LessonRequestView {
	return LessonRequestView{
		ID:              request.ID,
		StudentEmail:    request.Student.Email,
		TutorEmail:      request.Tutor.Email,
		Subject:         request.Subject,
		StartTime:       request.StartTime,
		DurationMinutes: request.DurationMinutes,
		Status:          string(request.Status),
		Note:            request.Note,
		CreatedAt:       request.CreatedAt,
	}
}

// Create godoc
// @Summary Create a lesson request (students only)
// @Tags lesson-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLessonRequestRequest true "Lesson request data"
// @Success 201 {object} LessonRequestView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /lesson-requests [post]
func (h *LessonRequestHandler) Create(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}

	var req CreateLessonRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Rate-limit identity: the authenticated user id, falling back to the
	// remote address for completeness.
	identity := strconv.FormatUint(uint64(caller.ID), 10)
	if caller.ID == 0 {
		identity = c.RealIP()
	}

	input := service.CreateLessonRequestInput{
		TutorID:         req.TutorID,
		SubjectID:       req.SubjectID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Note:            req.Note,
	}

	request, err := h.lessonService.Create(c.Request().Context(), caller, identity, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, newLessonRequestView(request))
}

// List godoc
// @Summary List the caller's lesson requests
// @Tags lesson-requests
// @Produce json
// @Security BearerAuth
// @Param role query string false "Explicit view: student | tutor"
// @Param status query string false "pending | approved | rejected"
// @Success 200 {array} LessonRequestView
// @Failure 401 {object} errors.ErrorResponse
// @Router /lesson-requests [get]
func (h *LessonRequestHandler) List(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}

	requests, err := h.lessonService.List(c.Request().Context(), caller, c.QueryParam("role"), c.QueryParam("status"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	out := make([]LessonRequestView, 0, len(requests))
	for i := range requests {
		out = append(out, newLessonRequestView(&requests[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateStatus godoc
// @Summary Approve or reject a lesson request (assigned tutor only)
// @Tags lesson-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson request id"
// @Param request body UpdateLessonRequestRequest true "New status"
// @Success 200 {object} LessonRequestView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /lesson-requests/{id} [patch]
func (h *LessonRequestHandler) UpdateStatus(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "lesson request not found",
			Code:  "NOT_FOUND",
		})
	}

	var req UpdateLessonRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.lessonService.Transition(c.Request().Context(), caller, uint(id), model.LessonRequestStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, newLessonRequestView(request))
}
