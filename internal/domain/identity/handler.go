package identity

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Sam4000133/HealthTrack-sub000/internal/platform/auth"
	"github.com/Sam4000133/HealthTrack-sub000/pkg/pagination"
)

type Handler struct {
	svc      *Service
	jwtCfg   auth.JWTConfig
	tokenTTL time.Duration
}

func NewHandler(svc *Service, jwtCfg auth.JWTConfig, tokenTTL time.Duration) *Handler {
	return &Handler{svc: svc, jwtCfg: jwtCfg, tokenTTL: tokenTTL}
}

// RegisterRoutes wires user management under api. Login is registered
// separately on the public group since it runs before authentication.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	admin := auth.RequireRole("admin")

	api.GET("/me", h.Me)

	api.GET("/users", h.ListUsers, admin)
	api.POST("/users", h.CreateUser, admin)
	api.GET("/users/:id", h.GetUser, admin)
	api.PUT("/users/:id", h.UpdateUser, admin)
	api.DELETE("/users/:id", h.DeleteUser, admin)

	api.POST("/doctors/:id/patients", h.AssignPatient, admin)
	api.DELETE("/doctors/:id/patients/:pid", h.UnassignPatient, admin)
	api.GET("/doctors/:id/patients", h.ListPatients, auth.RequireRole("doctor"))
}

// RegisterPublicRoutes wires the unauthenticated auth endpoints.
func (h *Handler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	token, err := auth.IssueToken(h.jwtCfg, u.ID.String(), []string{string(u.Role)}, h.tokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}
	return c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokenTTL),
		User:      u,
	})
}

// Me returns the authenticated user's own record.
func (h *Handler) Me(c echo.Context) error {
	callerID := auth.UserIDFromContext(c.Request().Context())
	id, err := uuid.Parse(callerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	u, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var in CreateUserInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.CreateUser(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	u, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) ListUsers(c echo.Context) error {
	pg := pagination.FromContext(c)
	filter := ListFilter{
		Role:   Role(c.QueryParam("role")),
		Search: c.QueryParam("q"),
		Limit:  pg.Limit,
		Offset: pg.Offset,
	}
	if filter.Role != "" && !filter.Role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role filter")
	}
	items, total, err := h.svc.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in UpdateUserInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.UpdateUser(c.Request().Context(), id, in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type assignRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
}

func (h *Handler) AssignPatient(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor id")
	}
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PatientID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}
	if err := h.svc.AssignPatient(c.Request().Context(), doctorID, req.PatientID); err != nil {
		if errors.Is(err, ErrNotADoctor) || errors.Is(err, ErrNotAPatient) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UnassignPatient(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor id")
	}
	patientID, err := uuid.Parse(c.Param("pid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	if err := h.svc.UnassignPatient(c.Request().Context(), doctorID, patientID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPatients lets a doctor list their own patients; admins may list any
// doctor's.
func (h *Handler) ListPatients(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor id")
	}
	callerID := auth.UserIDFromContext(c.Request().Context())
	roles := auth.RolesFromContext(c.Request().Context())
	if !hasRole(roles, "admin") && callerID != doctorID.String() {
		return echo.NewHTTPError(http.StatusForbidden, "cannot list another doctor's patients")
	}
	items, err := h.svc.ListPatients(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func hasRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
