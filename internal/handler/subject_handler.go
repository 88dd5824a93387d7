package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tutorhub/internal/errors"
	"tutorhub/internal/service"
)

// SubjectHandler handles the public subject catalog.
type SubjectHandler struct {
	subjectService service.SubjectService
}

// NewSubjectHandler creates a new subject handler.
func NewSubjectHandler(subjectService service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// List godoc
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Success 200 {array} model.Subject
// @Failure 500 {object} errors.ErrorResponse
// @Router /subjects [get]
func (h *SubjectHandler) List(c echo.Context) error {
	subjects, err := h.subjectService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, subjects)
}
