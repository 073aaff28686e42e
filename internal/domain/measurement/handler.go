package measurement

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Sam4000133/HealthTrack-sub000/internal/domain/identity"
	"github.com/Sam4000133/HealthTrack-sub000/internal/platform/auth"
	"github.com/Sam4000133/HealthTrack-sub000/pkg/pagination"
)

// AccessPolicy decides whether a caller may see a patient's measurements.
// Satisfied by identity.Service.
type AccessPolicy interface {
	CanAccessPatient(ctx context.Context, callerID uuid.UUID, callerRole identity.Role, patientID uuid.UUID) (bool, error)
}

type Handler struct {
	svc    *Service
	access AccessPolicy
}

func NewHandler(svc *Service, access AccessPolicy) *Handler {
	return &Handler{svc: svc, access: access}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/measurements", h.Create)
	api.GET("/measurements", h.List)
	api.GET("/measurements/:id", h.Get)
	api.PUT("/measurements/:id", h.Update)
	api.DELETE("/measurements/:id", h.Delete)
}

func caller(c echo.Context) (uuid.UUID, identity.Role, error) {
	idStr := auth.UserIDFromContext(c.Request().Context())
	if idStr == "" {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	roles := auth.RolesFromContext(c.Request().Context())
	if len(roles) == 0 {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusForbidden, "no role assigned")
	}
	return id, identity.Role(roles[0]), nil
}

func (h *Handler) authorize(c echo.Context, patientID uuid.UUID) error {
	callerID, role, err := caller(c)
	if err != nil {
		return err
	}
	allowed, err := h.access.CanAccessPatient(c.Request().Context(), callerID, role, patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !allowed {
		return echo.NewHTTPError(http.StatusForbidden, "not allowed to access this patient")
	}
	return nil
}

type createRequest struct {
	UserID        uuid.UUID             `json:"user_id"`
	Type          Type                  `json:"type"`
	RecordedAt    *time.Time            `json:"recorded_at"`
	Note          string                `json:"note"`
	Glucose       *GlucoseReading       `json:"glucose"`
	BloodPressure *BloodPressureReading `json:"blood_pressure"`
	Weight        *WeightReading        `json:"weight"`
}

// Create records a reading. Patients record for themselves; doctors and
// admins may record on behalf of an accessible patient.
func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID, _, err := caller(c)
	if err != nil {
		return err
	}
	if req.UserID == uuid.Nil {
		req.UserID = callerID
	}
	if err := h.authorize(c, req.UserID); err != nil {
		return err
	}

	m := &Measurement{
		UserID:        req.UserID,
		Type:          req.Type,
		Note:          req.Note,
		Glucose:       req.Glucose,
		BloodPressure: req.BloodPressure,
		Weight:        req.Weight,
	}
	if req.RecordedAt != nil {
		m.RecordedAt = *req.RecordedAt
	}
	if err := h.svc.Create(c.Request().Context(), m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "measurement not found")
	}
	if err := h.authorize(c, m.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// List returns a patient's readings, newest first. user_id defaults to
// the caller.
func (h *Handler) List(c echo.Context) error {
	callerID, _, err := caller(c)
	if err != nil {
		return err
	}
	userID := callerID
	if v := c.QueryParam("user_id"); v != "" {
		userID, err = uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
		}
	}
	if err := h.authorize(c, userID); err != nil {
		return err
	}

	pg := pagination.FromContext(c)
	filter := ListFilter{Limit: pg.Limit, Offset: pg.Offset}
	if v := c.QueryParam("type"); v != "" {
		filter.Type = Type(v)
		if !filter.Type.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid type filter")
		}
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from timestamp")
		}
		filter.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to timestamp")
		}
		filter.To = &t
	}

	items, total, err := h.svc.ListByUser(c.Request().Context(), userID, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "measurement not found")
	}
	if err := h.authorize(c, existing.UserID); err != nil {
		return err
	}

	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "measurement not found")
	}
	if err := h.authorize(c, existing.UserID); err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
