package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/enroll_user"
)

// EnrollmentResponse confirms an enrollment.
type EnrollmentResponse struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Province string `json:"province"`
}

// EnrollUser handles POST /provinces/:province/users/me.
func (h *Handler) EnrollUser(c echo.Context) error {
	id, ok := identity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	p := province(c)
	if err := h.uc.EnrollUser.Execute(c.Request().Context(), &enroll_user.Request{
		Province: p,
		Identity: id,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, EnrollmentResponse{UID: id.UID, Email: id.Email, Province: p})
}
