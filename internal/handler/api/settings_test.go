//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"lashdiary/internal/domain/catalog"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/handler/api"
	resdto "lashdiary/internal/handler/dto/response"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/commands"
	"lashdiary/tests/common/httptest"
	commandsmock "lashdiary/tests/mock/commands"
	queriesmock "lashdiary/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SettingsHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSettingsCommands
	mockQueries  *queriesmock.MockSettingsQueries
	current      studio.Settings
}

func (s *SettingsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSettingsCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSettingsQueries(s.mockCtrl)
	h := api.NewSettingsHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/admin/settings", h.Get)
	s.router.PUT("/admin/settings", h.Update)

	s.current = studio.Defaults(72, 120)
	s.current.Services = catalog.Catalog{
		{ID: "classic-full-set", Name: "Classic Full Set", PriceCents: 650000, DurationMin: 120},
	}
	s.current.DepositPercent = 20
}

func (s *SettingsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSettingsHandlerSuite(t *testing.T) {
	suite.Run(t, new(SettingsHandlerTestSuite))
}

func (s *SettingsHandlerTestSuite) TestGet() {
	s.Run("success: unsaved settings omit updatedAt", func() {
		s.mockQueries.EXPECT().Get(gomock.Any()).Return(s.current, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/settings", nil, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.NotContains(response, "updatedAt")
		s.EqualValues(72, response["cancellationWindowHours"])
	})
}

func (s *SettingsHandlerTestSuite) TestUpdate() {
	s.Run("success: only the fields present are replaced", func() {
		want := s.current
		want.DepositPercent = 30
		want.BlockedDates = []string{"2025-12-25"}

		s.mockQueries.EXPECT().Get(gomock.Any()).Return(s.current, nil).Times(1)
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, got studio.Settings) (studio.Settings, error) {
				if diff := cmp.Diff(want, got); diff != "" {
					s.T().Errorf("merged settings mismatch (-want +got):\n%s", diff)
				}
				got.UpdatedAt = fixedNow
				return got, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/settings", map[string]any{
			"depositPercent": 30,
			"blockedDates":   []string{"2025-12-25"},
		}, "")

		var response resdto.SettingsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(30, response.DepositPercent)
		s.Require().NotNil(response.UpdatedAt)
		s.True(fixedNow.Equal(*response.UpdatedAt))
		s.Len(response.Services, 1)
	})

	s.Run("error: out of range deposit is rejected at binding", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/settings",
			map[string]any{"depositPercent": 150}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: malformed blocked date is rejected at binding", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/settings",
			map[string]any{"blockedDates": []string{"25/12/2025"}}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: domain validation message is surfaced", func() {
		s.mockQueries.EXPECT().Get(gomock.Any()).Return(s.current, nil).Times(1)
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any()).
			Return(studio.Settings{}, errs.Mark(studio.ErrInvalidCancellationWin, commands.ErrDomainValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/settings",
			map[string]any{"bookingWindow": map[string]any{"start": "2025-03-01", "end": "2025-06-30"}}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "cancellation window hours must be positive")
		httptest.AssertReason(s.T(), rec, "validation_failed")
	})
}
