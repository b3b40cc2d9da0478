package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
)

// getUserID extracts the authenticated user's ID from the Echo
// context.  The JWT middleware stores the token's subject claim under
// "user_id"; depending on how the auth service minted the token the
// claim may arrive as a string or a JSON number.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			return 0, errors.New("invalid subject claim")
		}
		return id, nil
	case float64:
		if v <= 0 {
			return 0, errors.New("invalid subject claim")
		}
		return uint64(v), nil
	default:
		return 0, errors.New("missing subject claim")
	}
}

// respondError translates domain errors into JSON responses:
// validation failures become 400 with their reason, missing entities
// become 404, and anything else is a 500 with a generic message so
// internals never leak to clients.
func respondError(c echo.Context, err error) error {
	if apperr.IsValidation(err) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if apperr.IsNotFound(err) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
