package api

import (
	"net/http"

	"boardinghouse/internal/domain/booking"
	reqdto "boardinghouse/internal/handler/dto/request"
	resdto "boardinghouse/internal/handler/dto/response"
	"boardinghouse/internal/handler/httperr"
	"boardinghouse/internal/handler/middleware"
	"boardinghouse/internal/usecase/commands"
	"boardinghouse/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	cmds    commands.BookingCommands
	sweeper commands.PaymentDeadlineSweeper
	q       queries.BookingQueries
}

func NewAdminHandler(cmds commands.BookingCommands, sweeper commands.PaymentDeadlineSweeper, q queries.BookingQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, sweeper: sweeper, q: q}
}

// @Summary Change booking status
// @Description Drives the booking lifecycle: approve, reject, mark paid, complete or cancel
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ChangeStatusRequest true "Target status"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/admin/bookings/{id}/status [patch]
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Invalid request", nil)
		return
	}

	result, err := h.cmds.ChangeStatus(c.Request.Context(), middleware.GetActor(c), id, booking.Status(req.Status))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	respondTransition(c, result)
}

// @Summary List all bookings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/admin/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Invalid query", nil)
		return
	}

	views, err := h.q.ListAll(c.Request.Context(), middleware.GetActor(c), q.Filter())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	respondBookings(c, views)
}

// @Summary Run the payment deadline sweep
// @Description Cancels approved bookings whose payment deadline passed without proof. Safe to repeat.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 403 {object} httperr.Response
// @Router /api/admin/sweeps [post]
func (h *AdminHandler) Sweep(c *gin.Context) {
	result, err := h.sweeper.Run(c.Request.Context())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}
