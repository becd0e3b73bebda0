package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fichaje/workday-api/internal/core/domain"
	"github.com/fichaje/workday-api/internal/core/ports"
)

// WorkdayHandler serves the caller's own workdays. The owner is always the
// DNI from the identity header, never a body field.
type WorkdayHandler struct {
	service ports.WorkdayService
}

func NewWorkdayHandler(service ports.WorkdayService) *WorkdayHandler {
	return &WorkdayHandler{service: service}
}

// Get handles GET /workday?date=YYYY-MM-DD.
//
// @Summary      Get the caller's workday for a date
// @Tags         workdays
// @Produce      json
// @Param        X-User-DNI  header    string  true  "Caller DNI"
// @Param        date        query     string  true  "Date (YYYY-MM-DD)"
// @Success      200         {object}  workdayResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /workday [get]
func (h *WorkdayHandler) Get(c echo.Context) error {
	dni, err := ctxDNI(c)
	if err != nil {
		return err
	}

	var q dateQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	w, err := h.service.Get(c.Request().Context(), dni, q.Date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workdayResponse{Success: true, Workday: w})
}

// Save handles POST /workday. The record for (caller, date) is created or
// fully replaced.
//
// @Summary      Create or replace the caller's workday
// @Tags         workdays
// @Accept       json
// @Produce      json
// @Param        X-User-DNI  header    string              true  "Caller DNI"
// @Param        body        body      saveWorkdayRequest  true  "Workday; every key is required"
// @Success      200         {object}  messageResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /workday [post]
func (h *WorkdayHandler) Save(c echo.Context) error {
	dni, err := ctxDNI(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if missing := missingKeys(raw, saveWorkdayFields); len(missing) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
	}

	var req saveWorkdayRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	w := &domain.Workday{
		UserDNI:   dni,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Events:    req.Events,
	}
	if req.TotalBreakDuration != nil {
		w.TotalBreakDuration = *req.TotalBreakDuration
	}

	if err := h.service.Save(c.Request().Context(), w); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("workday saved"))
}

// ListForUser handles GET /workdays/user.
//
// @Summary      List the caller's workdays, newest first
// @Tags         workdays
// @Produce      json
// @Param        X-User-DNI  header    string  true  "Caller DNI"
// @Success      200         {object}  workdaysResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /workdays/user [get]
func (h *WorkdayHandler) ListForUser(c echo.Context) error {
	dni, err := ctxDNI(c)
	if err != nil {
		return err
	}

	list, err := h.service.ListForUser(c.Request().Context(), dni)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workdaysResponse{Success: true, Workdays: list})
}

// Delete handles POST /workday/delete. Deleting a missing workday succeeds.
//
// @Summary      Delete the caller's workday for a date
// @Tags         workdays
// @Accept       json
// @Produce      json
// @Param        X-User-DNI  header    string                true  "Caller DNI"
// @Param        body        body      deleteWorkdayRequest  true  "Date to delete"
// @Success      200         {object}  messageResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /workday/delete [post]
func (h *WorkdayHandler) Delete(c echo.Context) error {
	dni, err := ctxDNI(c)
	if err != nil {
		return err
	}

	var req deleteWorkdayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Request().Context(), dni, req.Date); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("workday for "+req.Date+" deleted for "+dni))
}

func missingKeys(raw map[string]json.RawMessage, keys []string) []string {
	var missing []string
	for _, k := range keys {
		if _, present := raw[k]; !present {
			missing = append(missing, k)
		}
	}
	return missing
}
