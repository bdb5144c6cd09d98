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
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds    commands.BookingCommands
	orphans commands.OrphanBookingAssociator
	q       queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, orphans commands.OrphanBookingAssociator, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, orphans: orphans, q: q}
}

// @Summary Create booking
// @Description Request a room. Works without an account; the booking is then matched to a user at login by contact details.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Invalid date", nil)
		return
	}

	view, err := h.cmds.CreateBooking(c.Request.Context(), middleware.GetActor(c), in)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	respondBooking(c, http.StatusCreated, view)
}

// @Summary List my bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Invalid query", nil)
		return
	}

	views, err := h.q.ListMine(c.Request.Context(), middleware.GetActor(c), q.Page())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	respondBookings(c, views)
}

// @Summary Get booking
// @Description Owner or admin only
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	respondBooking(c, http.StatusOK, view)
}

// @Summary Cancel booking
// @Description The owner withdraws a booking that is not paid yet
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	result, err := h.cmds.ChangeStatus(c.Request.Context(), middleware.GetActor(c), id, booking.StatusCancelled)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	respondTransition(c, result)
}

// @Summary Attach payment proof
// @Description Records the stored reference of a transfer receipt. The booking stays in its status; an admin marks it paid.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.PaymentProofRequest true "Proof reference"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/payment-proof [put]
func (h *BookingHandler) AttachPaymentProof(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.PaymentProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Invalid request", nil)
		return
	}

	view, err := h.cmds.AttachPaymentProof(c.Request.Context(), middleware.GetActor(c), id, req.PaymentProofRef)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	respondBooking(c, http.StatusOK, view)
}

// @Summary Claim bookings made without an account
// @Description Attaches bookings whose contact email or phone matches the logged-in user
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ClaimResponse
// @Failure 401 {object} httperr.Response
// @Router /api/bookings/claim [post]
func (h *BookingHandler) Claim(c *gin.Context) {
	claimed, err := h.orphans.ClaimForActor(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ClaimResponse{Claimed: claimed})
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func respondBooking(c *gin.Context, status int, view *queries.BookingView) {
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(status, res)
}

func respondBookings(c *gin.Context, views []*queries.BookingView) {
	res, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func respondTransition(c *gin.Context, result *commands.TransitionResult) {
	res, err := resdto.FromTransitionResult(result)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
