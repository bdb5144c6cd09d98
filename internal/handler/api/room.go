package api

import (
	"net/http"

	reqdto "boardinghouse/internal/handler/dto/request"
	resdto "boardinghouse/internal/handler/dto/response"
	"boardinghouse/internal/handler/httperr"
	"boardinghouse/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	q queries.RoomQueries
}

func NewRoomHandler(q queries.RoomQueries) *RoomHandler {
	return &RoomHandler{q: q}
}

// @Summary List rooms
// @Description Room catalog ordered by floor and number
// @Tags rooms
// @Produce json
// @Param available query bool false "Only rooms that can be booked now"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Router /api/rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	var q reqdto.ListRoomsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Invalid query", nil)
		return
	}

	views, err := h.q.List(c.Request.Context(), q.Available)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromRoomViews(views)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromRoomView(view)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
