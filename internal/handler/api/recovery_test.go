//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"dj-booking-engine/internal/handler/api"
	resdto "dj-booking-engine/internal/handler/dto/response"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/tests/common/httptest"
	commandsmock "dj-booking-engine/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RecoveryHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRecoveryCommands
}

func (s *RecoveryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRecoveryCommands(s.mockCtrl)
	h := api.NewRecoveryHandler(s.mockCommands)

	s.router.POST("/recoveries/:id/accept", h.Accept)
	s.router.POST("/recoveries/:id/decline", h.Decline)
}

func (s *RecoveryHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRecoveryHandlerSuite(t *testing.T) {
	suite.Run(t, new(RecoveryHandlerTestSuite))
}

func (s *RecoveryHandlerTestSuite) TestAccept() {
	id := uuid.New()
	url := "/recoveries/" + id.String() + "/accept"

	s.Run("applied", func() {
		s.mockCommands.EXPECT().AcceptRecovery(gomock.Any(), id, "sounds good").Return(true, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"response": "sounds good"}, "")

		var resp resdto.RecoveryActionResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.True(resp.Applied)
	})

	s.Run("unknown record is not an error", func() {
		s.mockCommands.EXPECT().AcceptRecovery(gomock.Any(), id, "").Return(false, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var resp resdto.RecoveryActionResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.False(resp.Applied)
	})

	s.Run("extension blocked: 409", func() {
		failure := errs.Mark(errs.Mark(errs.New("busy"), commands.ErrExtensionConflict), commands.ErrRecoveryFailed)
		s.mockCommands.EXPECT().AcceptRecovery(gomock.Any(), id, "").Return(false, failure).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})

	s.Run("invalid id: 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/recoveries/nope/accept", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid id format")
	})
}

func (s *RecoveryHandlerTestSuite) TestDecline() {
	id := uuid.New()
	s.mockCommands.EXPECT().DeclineRecovery(gomock.Any(), id, "no thanks").Return(true, nil).Times(1)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/recoveries/"+id.String()+"/decline",
		map[string]any{"response": "no thanks"}, "")

	var resp resdto.RecoveryActionResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.True(resp.Applied)
}
