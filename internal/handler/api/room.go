package api

import (
	"net/http"
	"strconv"

	"medoffice-booking/internal/domain/user"
	reqdto "medoffice-booking/internal/handler/dto/request"
	resdto "medoffice-booking/internal/handler/dto/response"
	"medoffice-booking/internal/handler/httperr"
	"medoffice-booking/internal/handler/middleware"
	"medoffice-booking/internal/usecase/commands"
	"medoffice-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	cmds         commands.RoomCommands
	rooms        queries.RoomQueries
	availability queries.AvailabilityQueries
}

func NewRoomHandler(cmds commands.RoomCommands, rooms queries.RoomQueries, availability queries.AvailabilityQueries) *RoomHandler {
	return &RoomHandler{
		cmds:         cmds,
		rooms:        rooms,
		availability: availability,
	}
}

// @Summary List rooms
// @Description List rooms open for booking; admins also see closed rooms
// @Tags rooms
// @Produce json
// @Success 200 {array} resdto.RoomResponse
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	role, _ := middleware.GetUserRole(c)
	views, err := h.rooms.List(c.Request.Context(), role == user.RoleAdmin)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	res, err := resdto.FromRoomViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Create room
// @Description Create a room (admin only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room"
// @Success 201 {object} resdto.CreateRoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), req, role)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateRoomResponse{ID: id})
}

// @Summary Monthly availability
// @Description Occupied slots per (date, room) for a month
// @Tags rooms
// @Produce json
// @Param month query string true "YYYY-MM"
// @Param room_id query int false "Room ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rooms/availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	view, err := h.availability.GetAvailability(c.Request.Context(), q.RoomID, q.Month)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	res, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Check a slot
// @Description Whether a slot on a date can still be booked
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Param date query string true "YYYY-MM-DD"
// @Param slot query string true "full, morning or evening"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rooms/{id}/slots [get]
func (h *RoomHandler) CheckSlot(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	var q reqdto.SlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	view, err := h.availability.CheckSlot(c.Request.Context(), roomID, q.Date, q.Slot)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotView(view))
}

// @Summary Monthly plan dates
// @Description Weekdays a monthly plan starting at start would book
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Param start query string true "YYYY-MM-DD"
// @Param slot query string true "full, morning or evening"
// @Success 200 {object} resdto.MonthlyDatesResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rooms/{id}/monthly-dates [get]
func (h *RoomHandler) MonthlyDates(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	var q reqdto.MonthlyDatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	view, err := h.availability.MonthlyDates(c.Request.Context(), roomID, q.Start, q.Slot)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMonthlyDatesView(view))
}

func roomIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return 0, false
	}
	return id, true
}
