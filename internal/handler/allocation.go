package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-room-allocation/internal/allocation"
)

// AllocationHandler exposes the allocation engine's three operations
// over HTTP.  The handlers are deliberately thin: request validation
// beyond basic parsing and all authentication concerns live in the
// middleware and the external auth service, and every decision is made
// by the allocation service.
type AllocationHandler struct {
	Service *allocation.Service
}

// NewAllocationHandler constructs an AllocationHandler.  The service
// must be non-nil.
func NewAllocationHandler(svc *allocation.Service) *AllocationHandler {
	if svc == nil {
		panic("nil service passed to NewAllocationHandler")
	}
	return &AllocationHandler{Service: svc}
}

// Submit handles POST /v1/allocations.  The authenticated resident
// submits an allocation request for an academic session; the body may
// carry an optional "session" label, defaulting to the current year.
// The response reports whether the request was auto-paired and, if
// so, the assigned room and compatibility result.
func (h *AllocationHandler) Submit(c echo.Context) error {
	residentID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Session string `json:"session"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	result, err := h.Service.Submit(c.Request().Context(), residentID, body.Session)
	if err != nil {
		return respondError(c, err)
	}
	resp := echo.Map{
		"requestId":  result.RequestID,
		"status":     result.Status,
		"autoPaired": result.AutoPaired,
		"roomId":     result.RoomID,
	}
	if result.Score != nil {
		resp["compatibility"] = echo.Map{"score": *result.Score, "range": *result.Range}
	} else {
		resp["compatibility"] = nil
	}
	return c.JSON(http.StatusCreated, resp)
}

// Suggestions handles GET /v1/residents/:id/suggestions.  It returns
// the grouped compatibility suggestions for a resident, served from
// the in-process cache when the resident's trait signature is
// unchanged.
func (h *AllocationHandler) Suggestions(c echo.Context) error {
	residentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || residentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resident id"})
	}
	result, err := h.Service.Suggestions(c.Request().Context(), residentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Reallocate handles PATCH /v1/allocations/:id/reallocate.  An
// administrator moves an approved request to a different room; the
// body must carry the target room ID.  The allocation service
// enforces capacity, gender and compatibility rules atomically.
func (h *AllocationHandler) Reallocate(c echo.Context) error {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || requestID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}
	var body struct {
		TargetRoomID uint64 `json:"targetRoomId"`
	}
	if err := c.Bind(&body); err != nil || body.TargetRoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "targetRoomId is required"})
	}
	result, err := h.Service.Reallocate(c.Request().Context(), requestID, body.TargetRoomID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":    result.Status,
		"requestId": result.RequestID,
		"roomId":    result.RoomID,
	})
}
