package stats

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Sam4000133/HealthTrack-sub000/internal/domain/identity"
	"github.com/Sam4000133/HealthTrack-sub000/internal/domain/measurement"
	"github.com/Sam4000133/HealthTrack-sub000/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	access measurement.AccessPolicy
}

func NewHandler(svc *Service, access measurement.AccessPolicy) *Handler {
	return &Handler{svc: svc, access: access}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/stats/summary", h.Summary)
	api.GET("/stats/daily", h.Daily)
	api.GET("/dashboard", h.Dashboard)
}

// target resolves which patient's data to read (patient_id defaults to
// the caller) and enforces access.
func (h *Handler) target(c echo.Context) (uuid.UUID, error) {
	idStr := auth.UserIDFromContext(c.Request().Context())
	callerID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	userID := callerID
	if v := c.QueryParam("patient_id"); v != "" {
		userID, err = uuid.Parse(v)
		if err != nil {
			return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
	}
	roles := auth.RolesFromContext(c.Request().Context())
	if len(roles) == 0 {
		return uuid.Nil, echo.NewHTTPError(http.StatusForbidden, "no role assigned")
	}
	allowed, err := h.access.CanAccessPatient(c.Request().Context(), callerID, identity.Role(roles[0]), userID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !allowed {
		return uuid.Nil, echo.NewHTTPError(http.StatusForbidden, "not allowed to access this patient")
	}
	return userID, nil
}

func daysParam(c echo.Context) (int, error) {
	v := c.QueryParam("days")
	if v == "" {
		return DefaultWindowDays, nil
	}
	days, err := strconv.Atoi(v)
	if err != nil || days < 1 || days > MaxWindowDays {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "days must be between 1 and 366")
	}
	return days, nil
}

func typeParam(c echo.Context) (measurement.Type, error) {
	typ := measurement.Type(c.QueryParam("type"))
	if !typ.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "type must be glucose, blood_pressure or weight")
	}
	return typ, nil
}

func (h *Handler) Summary(c echo.Context) error {
	userID, err := h.target(c)
	if err != nil {
		return err
	}
	typ, err := typeParam(c)
	if err != nil {
		return err
	}
	days, err := daysParam(c)
	if err != nil {
		return err
	}
	out, err := h.svc.WindowSummary(c.Request().Context(), userID, typ, time.Now(), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Daily(c echo.Context) error {
	userID, err := h.target(c)
	if err != nil {
		return err
	}
	typ, err := typeParam(c)
	if err != nil {
		return err
	}
	days, err := daysParam(c)
	if err != nil {
		return err
	}
	out, err := h.svc.DailyChart(c.Request().Context(), userID, typ, time.Now(), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Dashboard(c echo.Context) error {
	userID, err := h.target(c)
	if err != nil {
		return err
	}
	out, err := h.svc.BuildDashboard(c.Request().Context(), userID, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}
