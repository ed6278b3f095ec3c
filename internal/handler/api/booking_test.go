//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"lashdiary/internal/domain/booking"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/handler/api"
	reqdto "lashdiary/internal/handler/dto/request"
	resdto "lashdiary/internal/handler/dto/response"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"
	"lashdiary/internal/usecase/shared"
	"lashdiary/tests/common/builder"
	"lashdiary/tests/common/httptest"
	"lashdiary/tests/common/testutil"
	commandsmock "lashdiary/tests/mock/commands"
	queriesmock "lashdiary/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	h := api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/booking/create", h.Create)
	s.router.GET("/booking/manage/:token", h.GetManage)
	s.router.POST("/booking/manage/:token", h.Manage)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/booking/create"
	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView(s.T(), fixedNow)

	s.Run("success: returns 201 with the manage token", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody.ToInput()).
			Return(&commands.CreateBookingResult{
				BookingID:   view.ID,
				ManageToken: "tok",
				ManageURL:   "https://lashdiary.test/booking/manage/tok",
				Booking:     view,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.BookingID)
		s.Equal("tok", response.ManageToken)
		s.Require().NotNil(response.Booking)
		s.Equal("confirmed", response.Booking.Status)
		s.Equal(view.Email, response.Booking.Email)
		s.Len(response.Booking.Services, 1)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email")},
			{name: "missing phone", mutate: testutil.Field("phone", nil)},
			{name: "missing timeSlot", mutate: testutil.Field("timeSlot", nil)},
			{name: "malformed date", mutate: testutil.Field("date", "10/03/2025")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
				httptest.AssertReason(s.T(), rec, "invalid_request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name   string
			err    error
			status int
			reason string
		}{
			{"slot taken", shared.ErrSlotUnavailable, http.StatusConflict, "slot_unavailable"},
			{"slot not generated", shared.ErrSlotNotOffered, http.StatusBadRequest, "slot_not_offered"},
			{"outside booking window", errs.Wrap(studio.ErrOutsideBookingWindow, "check window"), http.StatusUnprocessableEntity, "outside_booking_window"},
			{"slot already started", shared.ErrSlotInPast, http.StatusUnprocessableEntity, "slot_in_past"},
			{"missing contact", errs.Mark(booking.ErrMissingContact, commands.ErrDomainValidation), http.StatusBadRequest, "missing_contact"},
			{"generic domain validation", errs.Mark(errors.New("services must not be empty"), commands.ErrDomainValidation), http.StatusBadRequest, "validation_failed"},
			{"store failure", errors.New("disk full"), http.StatusInternalServerError, "internal"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
				httptest.AssertReason(s.T(), rec, tc.reason)
			})
		}
	})

	s.Run("error: generic validation surfaces the underlying message", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("services must not be empty"), commands.ErrDomainValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "services must not be empty")
	})
}

func (s *BookingHandlerTestSuite) TestGetManage() {
	view := builder.NewBookingBuilder().BuildManageView(s.T(), fixedNow)

	s.Run("success: returns the booking and its policy", func() {
		s.mockQueries.EXPECT().GetByManageToken(gomock.Any(), "tok-123").Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/booking/manage/tok-123", nil, "")

		var response resdto.ManageBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Booking.ID, response.Booking.ID)
		s.True(response.Policy.CanReschedule)
		s.True(response.Policy.CanTransfer)
		s.NotContains(rec.Body.String(), "manageToken")
	})

	s.Run("error: unknown token is 404", func() {
		s.mockQueries.EXPECT().GetByManageToken(gomock.Any(), "nope").
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/booking/manage/nope", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking not found")
		httptest.AssertReason(s.T(), rec, "booking_not_found")
	})
}

func (s *BookingHandlerTestSuite) TestManage() {
	url := "/booking/manage/tok-123"
	view := builder.NewBookingBuilder().BuildManageView(s.T(), fixedNow)
	reqBody := reqdto.ManageBookingRequest{
		Action:      "reschedule",
		NewDate:     "2025-03-11",
		NewTimeSlot: "2025-03-11T09:00:00Z",
	}

	s.Run("success: reschedule returns the updated booking", func() {
		s.mockCommands.EXPECT().Manage(gomock.Any(), "tok-123", reqBody.ToInput()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: unknown action is rejected before the use case", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("action", "cancel"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps policy errors", func() {
		cases := []struct {
			name   string
			err    error
			status int
			reason string
		}{
			{"管理が無効", booking.ErrManageDisabled, http.StatusForbidden, "manage_disabled"},
			{"締切後", booking.ErrWithinCutoff, http.StatusUnprocessableEntity, "within_cutoff"},
			{"同じ枠", booking.ErrSameSlot, http.StatusUnprocessableEntity, "same_slot"},
			{"キャンセル済み", booking.ErrBookingCancelled, http.StatusUnprocessableEntity, "booking_cancelled"},
			{"枠が埋まっている", shared.ErrSlotUnavailable, http.StatusConflict, "slot_unavailable"},
			{"予約なし", commands.ErrBookingNotFound, http.StatusNotFound, "booking_not_found"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Manage(gomock.Any(), "tok-123", gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
				httptest.AssertReason(s.T(), rec, tc.reason)
			})
		}
	})

	s.Run("error: transfer to an invalid contact is 400", func() {
		body := reqdto.ManageBookingRequest{Action: "transfer", NewName: "", NewEmail: "x@example.com"}
		s.mockCommands.EXPECT().Manage(gomock.Any(), "tok-123", body.ToInput()).
			Return(nil, errs.Mark(booking.ErrInvalidTransferee, commands.ErrDomainValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertReason(s.T(), rec, "invalid_transferee")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
