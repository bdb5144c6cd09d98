package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/domain/room"
	"boardinghouse/internal/domain/user"
	"boardinghouse/internal/handler"
	"boardinghouse/internal/handler/api"
	reqdto "boardinghouse/internal/handler/dto/request"
	resdto "boardinghouse/internal/handler/dto/response"
	"boardinghouse/internal/handler/handlertest"
	"boardinghouse/internal/handler/httperr"
	"boardinghouse/internal/handler/middleware"
	"boardinghouse/internal/infra/memstore"
	"boardinghouse/internal/infra/notify"
	"boardinghouse/internal/pkg/clock"
	"boardinghouse/internal/pkg/config"
	"boardinghouse/internal/pkg/jwt"
	"boardinghouse/internal/pkg/password"
	"boardinghouse/internal/usecase"
	"boardinghouse/internal/usecase/commands"
	"boardinghouse/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct-horse-battery"

var baseNow = time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

type RouterSuite struct {
	suite.Suite
	router *gin.Engine
	store  *memstore.Store
	clock  *clock.MockClock
	jwt    *jwt.Service

	roomID     uuid.UUID
	member     *user.User
	admin      *user.User
	userToken  string
	adminToken string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *RouterSuite) SetupTest() {
	cfg := config.NewTestConfig()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(baseNow)
	s.jwt = jwt.NewService(cfg.JWT.Secret, time.Hour, 24*time.Hour)

	uow := memstore.NewUnitOfWork(s.store)
	userReads := memstore.NewUserReadStore(s.store)

	calc, err := booking.NewPriceCalculator(cfg.Booking.MonthlyRate)
	s.Require().NoError(err)

	bookingQueries := queries.NewBookingQueries(memstore.NewBookingReadStore(s.store))
	bookings := commands.NewBookingCommands(
		uow,
		calc,
		commands.NewRoomAvailabilityTracker(),
		notify.NewOutboxNotifier(s.store, s.clock),
		bookingQueries,
		s.clock,
		commands.BookingSettings{PaymentWindow: cfg.Booking.PaymentWindow, MaxMonths: cfg.Booking.MaxMonths},
	)
	orphans := commands.NewOrphanBookingAssociator(uow, userReads)

	handlers := handler.Handlers{
		Auth: api.NewAuthHandler(
			commands.NewAuthCommands(uow, userReads, s.jwt, orphans, s.clock),
			queries.NewUserQueries(userReads),
			s.jwt,
			cfg,
		),
		Room:    api.NewRoomHandler(queries.NewRoomQueries(memstore.NewRoomReadStore(s.store))),
		Booking: api.NewBookingHandler(bookings, orphans, bookingQueries),
		Admin:   api.NewAdminHandler(bookings, commands.NewPaymentDeadlineSweeper(uow, bookings, s.clock), bookingQueries),
	}

	s.router = gin.New()
	handler.NewRouter(s.router, cfg, middleware.NewLogger(cfg.Log), handlers,
		middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.jwt)))

	r, err := room.NewRoom("A-101", 1, cfg.Booking.MonthlyRate, 2)
	s.Require().NoError(err)
	s.store.SeedRoom(r)
	s.roomID = r.ID()

	s.member = s.seedUser("sari@example.com", "0812-3456-789", user.RoleUser)
	s.admin = s.seedUser("admin@example.com", "0811-0000-000", user.RoleAdmin)
	s.userToken = s.token(s.member)
	s.adminToken = s.token(s.admin)
}

func (s *RouterSuite) seedUser(address, phone string, role user.Role) *user.User {
	email, err := user.NewEmail(address)
	s.Require().NoError(err)
	hash, err := password.HashPasswordWithCost(testPassword, bcrypt.MinCost)
	s.Require().NoError(err)
	u := user.ReconstructUser(uuid.New(), email, phone, hash, role, nil, true, baseNow, baseNow)
	s.store.SeedUser(u)
	return u
}

func (s *RouterSuite) token(u *user.User) string {
	token, err := s.jwt.GenerateAccessToken(u.ID(), u.Role())
	s.Require().NoError(err)
	return token
}

func (s *RouterSuite) bookingBody(roomID uuid.UUID) reqdto.CreateBookingRequest {
	months := 1
	return reqdto.CreateBookingRequest{
		RoomID:         roomID,
		CheckIn:        "2024-06-01",
		DurationMonths: &months,
		GuestCount:     1,
		ContactName:    "Sari Wulandari",
		ContactEmail:   "sari@example.com",
		ContactPhone:   "+62 812-3456-789",
		PaymentMethod:  booking.PaymentBankTransfer.String(),
	}
}

func (s *RouterSuite) createBooking(token string) resdto.BookingResponse {
	var res resdto.BookingResponse
	w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings", s.bookingBody(s.roomID), token)
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
	return res
}

func (s *RouterSuite) changeStatus(id uuid.UUID, status booking.Status) *httptest.ResponseRecorder {
	return handlertest.PerformRequest(s.T(), s.router, http.MethodPatch,
		fmt.Sprintf("/api/admin/bookings/%s/status", id),
		reqdto.ChangeStatusRequest{Status: status.String()}, s.adminToken)
}

func (s *RouterSuite) TestHealth() {
	w := handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestCORS_AllowsConfiguredOrigin() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	s.Equal("true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func (s *RouterSuite) TestCreateBooking() {
	s.Run("anonymous caller gets an unowned pending booking", func() {
		res := s.createBooking("")
		s.Equal(booking.StatusPending.String(), res.Status)
		s.Nil(res.UserID)
		s.Equal("2024-06-01", res.CheckIn)
		s.Equal("2024-07-01", res.CheckOut)
		s.EqualValues(1_500_000, res.TotalPrice)
		s.Nil(res.PaymentDueAt)
	})

	s.Run("logged-in caller owns the booking", func() {
		res := s.createBooking(s.userToken)
		s.Require().NotNil(res.UserID)
		s.Equal(s.member.ID(), *res.UserID)
	})

	s.Run("check-out only derives the duration", func() {
		m := handlertest.DtoMap(s.T(), s.bookingBody(s.roomID),
			handlertest.Field("duration_months", nil),
			handlertest.Field("check_out", "2024-09-01"))
		var res resdto.BookingResponse
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings", m, "")
		handlertest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Equal(3, res.DurationMonths)
		s.EqualValues(4_500_000, res.TotalPrice)
	})
}

func (s *RouterSuite) TestCreateBooking_Errors() {
	tests := []struct {
		name       string
		mutations  []func(map[string]any)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed date",
			mutations:  []func(map[string]any){handlertest.Field("check_in", "01/06/2024")},
			wantStatus: http.StatusBadRequest,
			wantCode:   httperr.CodeBadRequest,
		},
		{
			name:       "missing contact name",
			mutations:  []func(map[string]any){handlertest.Field("contact_name", nil)},
			wantStatus: http.StatusBadRequest,
			wantCode:   httperr.CodeBadRequest,
		},
		{
			name:       "check-out disagrees with duration",
			mutations:  []func(map[string]any){handlertest.Field("check_out", "2024-08-01")},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   httperr.CodeValidation,
		},
		{
			name:       "more guests than the room holds",
			mutations:  []func(map[string]any){handlertest.Field("guest_count", 3)},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   httperr.CodeValidation,
		},
		{
			name:       "unknown payment method",
			mutations:  []func(map[string]any){handlertest.Field("payment_method", "crypto")},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   httperr.CodeValidation,
		},
		{
			name:       "unknown room",
			mutations:  []func(map[string]any){handlertest.Field("room_id", uuid.NewString())},
			wantStatus: http.StatusNotFound,
			wantCode:   httperr.CodeNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			body := handlertest.DtoMap(s.T(), s.bookingBody(s.roomID), tt.mutations...)
			w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings", body, "")
			handlertest.AssertErrorResponse(s.T(), w, tt.wantStatus, tt.wantCode)
		})
	}
}

func (s *RouterSuite) TestCreateBooking_RoomUnavailable() {
	first := s.createBooking("")
	s.Require().Equal(http.StatusOK, s.changeStatus(first.ID, booking.StatusApproved).Code)

	w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings", s.bookingBody(s.roomID), "")
	handlertest.AssertErrorResponse(s.T(), w, http.StatusConflict, httperr.CodeRoomUnavailable)
}

func (s *RouterSuite) TestAdminApprove() {
	first := s.createBooking("")
	second := s.createBooking("")

	var res resdto.TransitionResponse
	handlertest.AssertSuccessResponse(s.T(), s.changeStatus(first.ID, booking.StatusApproved), http.StatusOK, &res)
	s.True(res.Changed)
	s.Equal(booking.StatusPending.String(), res.From)
	s.Equal(booking.StatusApproved.String(), res.To)
	s.Require().NotNil(res.Booking.PaymentDueAt)
	s.True(res.Booking.PaymentDueAt.Equal(baseNow.Add(24 * time.Hour)))

	jobs := s.store.Jobs()
	s.Len(jobs, 2)
	for _, job := range jobs {
		s.Equal(notify.TopicBookingApproved, job.Topic)
	}

	s.Run("second approval of the same room is refused", func() {
		handlertest.AssertErrorResponse(s.T(), s.changeStatus(second.ID, booking.StatusApproved), http.StatusConflict, httperr.CodeRoomTaken)
	})

	s.Run("transition outside the table", func() {
		handlertest.AssertErrorResponse(s.T(), s.changeStatus(first.ID, booking.StatusPending), http.StatusConflict, httperr.CodeInvalidTransition)
	})

	s.Run("unknown status", func() {
		handlertest.AssertErrorResponse(s.T(), s.changeStatus(first.ID, booking.Status("archived")), http.StatusUnprocessableEntity, httperr.CodeValidation)
	})
}

func (s *RouterSuite) TestAdminRoutes_RequireAdmin() {
	created := s.createBooking("")
	path := fmt.Sprintf("/api/admin/bookings/%s/status", created.ID)
	body := reqdto.ChangeStatusRequest{Status: booking.StatusApproved.String()}

	s.Run("no token", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodPatch, path, body, "")
		handlertest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, httperr.CodeUnauthorized)
	})

	s.Run("regular user", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodPatch, path, body, s.userToken)
		handlertest.AssertErrorResponse(s.T(), w, http.StatusForbidden, httperr.CodeForbidden)
	})

	s.Run("garbage token", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/bookings", nil, "not-a-jwt")
		handlertest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, httperr.CodeUnauthorized)
	})
}

func (s *RouterSuite) TestAdminListBookings() {
	first := s.createBooking("")
	s.createBooking("")
	s.Require().Equal(http.StatusOK, s.changeStatus(first.ID, booking.StatusApproved).Code)

	var approved []resdto.BookingResponse
	w := handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/bookings?status=approved", nil, s.adminToken)
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &approved)
	s.Require().Len(approved, 1)
	s.Equal(first.ID, approved[0].ID)

	var page []resdto.BookingResponse
	w = handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/bookings?limit=1", nil, s.adminToken)
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &page)
	s.Len(page, 1)
}

func (s *RouterSuite) TestOwnerBookings() {
	mine := s.createBooking(s.userToken)
	other := s.createBooking("")

	s.Run("list returns only own bookings", func() {
		var res []resdto.BookingResponse
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings", nil, s.userToken)
		handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.Equal(mine.ID, res[0].ID)
	})

	s.Run("someone else's booking is forbidden", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+other.ID.String(), nil, s.userToken)
		handlertest.AssertErrorResponse(s.T(), w, http.StatusForbidden, httperr.CodeForbidden)
	})

	s.Run("bad id", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/nope", nil, s.userToken)
		handlertest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, httperr.CodeBadRequest)
	})

	s.Run("listing requires a token", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings", nil, "")
		handlertest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, httperr.CodeUnauthorized)
	})
}

func (s *RouterSuite) TestOwnerCancel() {
	mine := s.createBooking(s.userToken)
	s.Require().Equal(http.StatusOK, s.changeStatus(mine.ID, booking.StatusApproved).Code)

	var res resdto.TransitionResponse
	w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+mine.ID.String()+"/cancel", nil, s.userToken)
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
	s.Equal(booking.StatusCancelled.String(), res.To)

	available, ok := s.store.RoomAvailable(s.roomID)
	s.Require().True(ok)
	s.True(available)

	s.Run("cancelling twice is an invalid transition", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+mine.ID.String()+"/cancel", nil, s.userToken)
		handlertest.AssertErrorResponse(s.T(), w, http.StatusConflict, httperr.CodeInvalidTransition)
	})
}

func (s *RouterSuite) TestPaymentProofThenPaid() {
	mine := s.createBooking(s.userToken)
	s.Require().Equal(http.StatusOK, s.changeStatus(mine.ID, booking.StatusApproved).Code)

	path := "/api/bookings/" + mine.ID.String() + "/payment-proof"
	var res resdto.BookingResponse
	w := handlertest.PerformRequest(s.T(), s.router, http.MethodPut, path,
		reqdto.PaymentProofRequest{PaymentProofRef: "proofs/receipt-1.jpg"}, s.userToken)
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
	s.Equal(booking.StatusApproved.String(), res.Status)
	s.Require().NotNil(res.PaymentProofRef)
	s.Equal("proofs/receipt-1.jpg", *res.PaymentProofRef)
	s.NotNil(res.PaymentDueAt)

	var paid resdto.TransitionResponse
	handlertest.AssertSuccessResponse(s.T(), s.changeStatus(mine.ID, booking.StatusPaid), http.StatusOK, &paid)
	s.Equal(booking.StatusPaid.String(), paid.Booking.Status)
	s.Nil(paid.Booking.PaymentDueAt)

	s.Run("proof on a paid booking is refused", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodPut, path,
			reqdto.PaymentProofRequest{PaymentProofRef: "proofs/receipt-2.jpg"}, s.userToken)
		handlertest.AssertErrorResponse(s.T(), w, http.StatusConflict, httperr.CodeInvalidTransition)
	})

	s.Run("owner cannot cancel a paid booking", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+mine.ID.String()+"/cancel", nil, s.userToken)
		handlertest.AssertErrorResponse(s.T(), w, http.StatusForbidden, httperr.CodeForbidden)
	})
}

func (s *RouterSuite) TestSweep() {
	overdue := s.createBooking("")
	s.Require().Equal(http.StatusOK, s.changeStatus(overdue.ID, booking.StatusApproved).Code)
	s.clock.Add(25 * time.Hour)

	var res resdto.SweepResponse
	w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/sweeps", nil, s.adminToken)
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
	s.Equal(resdto.SweepResponse{Candidates: 1, Cancelled: 1}, res)

	available, ok := s.store.RoomAvailable(s.roomID)
	s.Require().True(ok)
	s.True(available)

	w = handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/sweeps", nil, s.adminToken)
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
	s.Equal(resdto.SweepResponse{}, res)
}

func (s *RouterSuite) TestClaim() {
	orphan := s.createBooking("")

	var res resdto.ClaimResponse
	w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/claim", nil, s.userToken)
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
	s.EqualValues(1, res.Claimed)

	var claimed resdto.BookingResponse
	w = handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+orphan.ID.String(), nil, s.userToken)
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &claimed)
	s.Require().NotNil(claimed.UserID)
	s.Equal(s.member.ID(), *claimed.UserID)
}

func (s *RouterSuite) TestLogin() {
	s.Run("success sets cookies and claims orphan bookings", func() {
		s.createBooking("")

		var res resdto.LoginResponse
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "sari@example.com", Password: testPassword}, "")
		handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.NotEmpty(res.AccessToken)
		s.NotEmpty(res.RefreshToken)
		s.EqualValues(1, res.ClaimedBookings)
		s.Equal(s.member.ID(), res.User.ID)
		s.NotNil(handlertest.ExtractCookie(w, "access_token"))

		var me resdto.UserResponse
		w = handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/auth/me", nil, res.AccessToken)
		handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &me)
		s.Equal("sari@example.com", me.Email)
	})

	s.Run("wrong password", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "sari@example.com", Password: "wrong"}, "")
		handlertest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, httperr.CodeUnauthorized)
	})

	s.Run("malformed body", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/login",
			map[string]any{"email": "not-an-email"}, "")
		handlertest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, httperr.CodeBadRequest)
	})
}

func (s *RouterSuite) TestRoomCatalog_CachedAndInvalidated() {
	var rooms []resdto.RoomResponse
	w := handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/rooms", nil, "")
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &rooms)
	s.Require().Len(rooms, 1)
	s.True(rooms[0].IsAvailable)
	s.Empty(w.Header().Get("X-Cache"))

	w = handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/rooms", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("HIT", w.Header().Get("X-Cache"))

	created := s.createBooking("")
	s.Require().Equal(http.StatusOK, s.changeStatus(created.ID, booking.StatusApproved).Code)

	w = handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/rooms", nil, "")
	handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &rooms)
	s.Empty(w.Header().Get("X-Cache"))
	s.False(rooms[0].IsAvailable)

	s.Run("available filter hides the taken room", func() {
		var available []resdto.RoomResponse
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/rooms?available=true", nil, "")
		handlertest.AssertSuccessResponse(s.T(), w, http.StatusOK, &available)
		s.Empty(available)
	})

	s.Run("unknown room", func() {
		w := handlertest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/rooms/"+uuid.NewString(), nil, "")
		handlertest.AssertErrorResponse(s.T(), w, http.StatusNotFound, httperr.CodeNotFound)
	})
}
