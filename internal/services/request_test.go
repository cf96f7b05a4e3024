package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"licensing-system/internal/authz"
	"licensing-system/internal/dto"
	"licensing-system/internal/entities"
	"licensing-system/internal/events"
	"licensing-system/pkg/constants"
	apperrors "licensing-system/pkg/errors"
	"licensing-system/pkg/eventbus"
	"licensing-system/pkg/types"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (r *eventRecorder) listen(ctx context.Context, e eventbus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *eventRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name()
	}
	return out
}

type RequestServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memStore
	bus      *eventbus.Bus
	recorder *eventRecorder
	service  *RequestService
	now      time.Time

	client     authz.Actor
	otherUser  authz.Actor
	branch     authz.Actor
	farBranch  authz.Actor
	facilities authz.Actor
	review     authz.Actor
	general    authz.Actor
	deputy     authz.Actor
}

func (s *RequestServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newMemStore()
	s.bus = eventbus.New(zap.NewNop())
	s.recorder = &eventRecorder{}
	s.bus.Subscribe(events.RequestCreated, s.recorder.listen)
	s.bus.Subscribe(events.RequestTransitioned, s.recorder.listen)

	s.now = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
	s.service = NewRequestService(
		&fakeTxManager{store: s.store},
		&fakeRequestRepo{store: s.store},
		&fakeSequenceRepo{store: s.store},
		&fakeReferenceRepo{store: s.store},
		NewActionLogService(&fakeActionLogRepo{store: s.store}, zap.NewNop()),
		authz.NewGatekeeper(),
		s.bus,
		zap.NewNop(),
	)
	s.service.now = func() time.Time { return s.now }

	s.client = s.addActor("Client", constants.RoleClient, null.Int{})
	s.otherUser = s.addActor("Other client", constants.RoleClient, null.Int{})
	s.branch = s.addActor("Branch", constants.RoleBranchManager, null.IntFrom(1))
	s.farBranch = s.addActor("Far branch", constants.RoleBranchManager, null.IntFrom(2))
	s.facilities = s.addActor("Facilities", constants.RoleFacilitiesMgr, null.Int{})
	s.review = s.addActor("Review", constants.RoleReviewMgr, null.Int{})
	s.general = s.addActor("General", constants.RoleGeneralMgr, null.Int{})
	s.deputy = s.addActor("Deputy", constants.RoleDeputyMinister, null.Int{})
}

func (s *RequestServiceTestSuite) addActor(name string, role constants.Role, province null.Int) authz.Actor {
	u := entities.User{ID: uuid.New(), Name: name, Email: uuid.NewString() + "@ihsan.gov.ye", Role: role, ProvinceID: province, IsActive: true}
	s.store.users[u.ID] = u
	return authz.Actor{ID: u.ID, Name: u.Name, Role: role, ProvinceID: province, IsActive: true}
}

func (s *RequestServiceTestSuite) createPayload() dto.CreateRequestDTO {
	return dto.CreateRequestDTO{
		Type:            constants.RequestTypeOperation,
		FacilityType:    constants.FacilityGeneralHospital,
		FacilityName:    "  مستشفى السلام  ",
		OwnerName:       "Ali Saleh",
		OwnerPhone:      "+967 771 234 567",
		OwnerEmail:      " Owner@Example.com ",
		FacilityAddress: "Hadda street",
		ProvinceID:      1,
	}
}

func (s *RequestServiceTestSuite) create() *dto.RequestDetailsDTO {
	created, err := s.service.CreateRequest(s.ctx, s.client, s.createPayload())
	require.NoError(s.T(), err)
	return created
}

func (s *RequestServiceTestSuite) act(actor authz.Actor, id uuid.UUID, payload dto.RequestActionDTO) (*dto.RequestDetailsDTO, error) {
	s.now = s.now.Add(time.Hour)
	return s.service.Act(s.ctx, actor, id, payload)
}

func (s *RequestServiceTestSuite) TestCreateRequest_InitialState() {
	created := s.create()
	t := s.T()

	assert.Equal(t, "2025/000001", created.RequestNumber)
	assert.Equal(t, constants.StatusPendingBranch, created.Status)
	assert.Equal(t, constants.LevelBranch, created.CurrentLevel)
	assert.Equal(t, int64(2_000_000), created.FeeAmount)
	assert.Equal(t, "مستشفى السلام", created.FacilityName)
	assert.Equal(t, "owner@example.com", created.OwnerEmail.String)
	assert.Equal(t, s.client.ID, created.UserID)
	assert.Equal(t, "الأمانة", created.ProvinceName)
	assert.False(t, created.Branch.Approved)

	require.Len(t, created.Logs, 1)
	assert.Equal(t, constants.LogCreate, created.Logs[0].Action)
	assert.Equal(t, "تم إنشاء الطلب رقم 2025/000001 برسوم 2000000", created.Logs[0].Description)
	assert.Empty(t, created.AvailableActions, "a client never has workflow actions")

	s.bus.Wait()
	assert.Equal(t, []string{events.RequestCreated}, s.recorder.names())
}

func (s *RequestServiceTestSuite) TestCreateRequest_NumbersAreSequential() {
	first := s.create()
	second := s.create()

	assert.Equal(s.T(), "2025/000001", first.RequestNumber)
	assert.Equal(s.T(), "2025/000002", second.RequestNumber)
}

func (s *RequestServiceTestSuite) TestCreateRequest_UnknownProvince() {
	payload := s.createPayload()
	payload.ProvinceID = 99

	_, err := s.service.CreateRequest(s.ctx, s.client, payload)

	var inputErr *apperrors.InvalidInputError
	require.ErrorAs(s.T(), err, &inputErr)
	assert.Empty(s.T(), s.store.requests)
}

func (s *RequestServiceTestSuite) TestCreateRequest_InactiveActor() {
	actor := s.client
	actor.IsActive = false

	_, err := s.service.CreateRequest(s.ctx, actor, s.createPayload())
	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)
}

func (s *RequestServiceTestSuite) TestCreateRequest_BranchManagerOwnProvinceOnly() {
	t := s.T()
	payload := s.createPayload()
	payload.ProvinceID = 2

	_, err := s.service.CreateRequest(s.ctx, s.branch, payload)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Empty(t, s.store.requests)
	assert.Empty(t, s.store.logs)
	assert.Empty(t, s.store.seq, "no request number is consumed")

	payload.ProvinceID = 1
	created, err := s.service.CreateRequest(s.ctx, s.branch, payload)
	require.NoError(t, err)
	assert.Equal(t, "2025/000001", created.RequestNumber)
	assert.Equal(t, s.branch.ID, created.UserID)
}

func (s *RequestServiceTestSuite) TestFullLifecycle() {
	t := s.T()
	id := s.create().ID

	steps := []struct {
		actor  authz.Actor
		action dto.RequestActionDTO
		status constants.RequestStatus
		level  constants.Level
	}{
		{s.branch, dto.RequestActionDTO{Action: constants.ActionApprove, Notes: "documents complete"}, constants.StatusPendingFacilities, constants.LevelFacilities},
		{s.facilities, dto.RequestActionDTO{Action: constants.ActionApprove}, constants.StatusPendingReview, constants.LevelReview},
		{s.review, dto.RequestActionDTO{Action: constants.ActionApprove}, constants.StatusPendingDeputy, constants.LevelDeputy},
		{s.deputy, dto.RequestActionDTO{Action: constants.ActionApprove}, constants.StatusPendingPayment, constants.LevelCompleted},
		{s.review, dto.RequestActionDTO{
			Action:        constants.ActionIssueReceipt,
			ReceiptNumber: "R-100",
			ReceiptAmount: decimal.NewNullDecimal(decimal.NewFromInt(2_000_000)),
		}, constants.StatusPendingPayment, constants.LevelCompleted},
		{s.review, dto.RequestActionDTO{Action: constants.ActionVerifyPayment, PaymentReference: "BANK-7"}, constants.StatusCompleted, constants.LevelCompleted},
		{s.review, dto.RequestActionDTO{Action: constants.ActionIssueLicense, LicenseNumber: "LIC-2025-1"}, constants.StatusCompleted, constants.LevelCompleted},
	}

	for _, step := range steps {
		res, err := s.act(step.actor, id, step.action)
		require.NoError(t, err, "%s by %s", step.action.Action, step.actor.Role)
		assert.Equal(t, step.status, res.Status, step.action.Action)
		assert.Equal(t, step.level, res.CurrentLevel, step.action.Action)
	}

	final := s.store.request(id)
	assert.True(t, final.Branch.Approved)
	assert.Equal(t, "documents complete", final.Branch.Notes.String)
	assert.Equal(t, s.branch.ID, final.Branch.ApprovedBy.UUID)
	assert.True(t, final.Facilities.Approved)
	assert.True(t, final.Review.Approved)
	assert.True(t, final.Deputy.Approved)
	assert.Equal(t, "R-100", final.ReceiptNumber.String)
	assert.True(t, final.PaymentVerified)
	assert.Equal(t, "LIC-2025-1", final.LicenseNumber.String)
	require.True(t, final.LicenseExpiryDate.Valid)
	assert.Equal(t, final.LicenseIssuedAt.Time.AddDate(1, 0, 0), final.LicenseExpiryDate.Time)

	logs := s.store.logsFor(id)
	require.Len(t, logs, 8)
	assert.Equal(t, constants.LogCreate, logs[0].Action)
	assert.Equal(t, constants.LogIssueLicense, logs[7].Action)

	s.bus.Wait()
	assert.Len(t, s.recorder.names(), 8)
}

func (s *RequestServiceTestSuite) TestReject_IsTerminal() {
	t := s.T()
	id := s.create().ID

	res, err := s.act(s.branch, id, dto.RequestActionDTO{Action: constants.ActionReject, Notes: "missing license of director"})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusRejected, res.Status)
	assert.Equal(t, constants.LevelBranch, res.CurrentLevel)
	assert.Equal(t, "missing license of director", res.Branch.Notes.String)
	assert.Empty(t, res.AvailableActions)

	_, err = s.act(s.deputy, id, dto.RequestActionDTO{Action: constants.ActionApprove})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func (s *RequestServiceTestSuite) TestAct_ClientIsForbidden() {
	id := s.create().ID

	_, err := s.act(s.client, id, dto.RequestActionDTO{Action: constants.ActionApprove})
	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)
	assert.Len(s.T(), s.store.logsFor(id), 1)
}

func (s *RequestServiceTestSuite) TestAct_BranchManagerOfAnotherProvince() {
	id := s.create().ID

	_, err := s.act(s.farBranch, id, dto.RequestActionDTO{Action: constants.ActionApprove})

	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)
	assert.Equal(s.T(), constants.StatusPendingBranch, s.store.request(id).Status)
	assert.Len(s.T(), s.store.logsFor(id), 1)
}

func (s *RequestServiceTestSuite) TestAct_WrongLevelForRole() {
	id := s.create().ID

	_, err := s.act(s.facilities, id, dto.RequestActionDTO{Action: constants.ActionApprove})

	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)
	assert.Equal(s.T(), constants.StatusPendingBranch, s.store.request(id).Status)
}

func (s *RequestServiceTestSuite) TestAct_DeputyCanApproveAtBranch() {
	id := s.create().ID

	res, err := s.act(s.deputy, id, dto.RequestActionDTO{Action: constants.ActionApprove})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), constants.StatusPendingFacilities, res.Status)
	assert.Equal(s.T(), s.deputy.ID, res.Branch.ApprovedBy.UUID)
}

func (s *RequestServiceTestSuite) TestAct_UnknownRequest() {
	_, err := s.act(s.branch, uuid.New(), dto.RequestActionDTO{Action: constants.ActionApprove})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *RequestServiceTestSuite) TestAct_ReceiptPayloadRequired() {
	id := s.approveThroughDeputy()

	_, err := s.act(s.review, id, dto.RequestActionDTO{Action: constants.ActionIssueReceipt, ReceiptNumber: "R-1"})

	var inputErr *apperrors.InvalidInputError
	require.ErrorAs(s.T(), err, &inputErr)
	assert.False(s.T(), s.store.request(id).ReceiptNumber.Valid)
}

func (s *RequestServiceTestSuite) TestAct_DuplicateLicenseRollsBack() {
	t := s.T()
	first := s.approveThroughPayment()
	second := s.approveThroughPayment()

	_, err := s.act(s.review, first, dto.RequestActionDTO{Action: constants.ActionIssueLicense, LicenseNumber: "LIC-1"})
	require.NoError(t, err)

	logsBefore := len(s.store.logsFor(second))
	_, err = s.act(s.review, second, dto.RequestActionDTO{Action: constants.ActionIssueLicense, LicenseNumber: "LIC-1"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.False(t, s.store.request(second).LicenseNumber.Valid)
	assert.Len(t, s.store.logsFor(second), logsBefore)
}

func (s *RequestServiceTestSuite) TestGetRequest_Visibility() {
	t := s.T()
	id := s.create().ID

	_, err := s.service.GetRequest(s.ctx, s.client, id)
	assert.NoError(t, err)

	_, err = s.service.GetRequest(s.ctx, s.otherUser, id)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = s.service.GetRequest(s.ctx, s.farBranch, id)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	res, err := s.service.GetRequest(s.ctx, s.branch, id)
	require.NoError(t, err)
	assert.Equal(t, []constants.RequestAction{constants.ActionApprove, constants.ActionReject}, res.AvailableActions)

	res, err = s.service.GetRequest(s.ctx, s.general, id)
	require.NoError(t, err)
	assert.Empty(t, res.AvailableActions, "the general manager does not approve at branch level")

	_, err = s.service.GetRequest(s.ctx, s.general, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func (s *RequestServiceTestSuite) TestGetRequest_PaymentActionsForReviewManager() {
	id := s.approveThroughDeputy()

	res, err := s.service.GetRequest(s.ctx, s.review, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []constants.RequestAction{constants.ActionIssueReceipt}, res.AvailableActions)

	res, err = s.service.GetRequest(s.ctx, s.deputy, id)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), res.AvailableActions)
}

func (s *RequestServiceTestSuite) TestGetLogs_NewestFirst() {
	t := s.T()
	id := s.create().ID
	_, err := s.act(s.branch, id, dto.RequestActionDTO{Action: constants.ActionApprove})
	require.NoError(t, err)

	logs, err := s.service.GetLogs(s.ctx, s.client, id)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, constants.LogApprove, logs[0].Action)
	assert.Equal(t, "Branch", logs[0].UserName)
	assert.Equal(t, constants.LogCreate, logs[1].Action)

	_, err = s.service.GetLogs(s.ctx, s.otherUser, id)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func (s *RequestServiceTestSuite) TestGetRequests_UsesQueueOrVisibilityScope() {
	t := s.T()
	s.create()

	_, total, err := s.service.GetRequests(s.ctx, s.branch, types.Filter{}, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	query, args, err := s.store.lastScope.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "r.status")
	assert.Contains(t, args, string(constants.StatusPendingBranch))

	_, _, err = s.service.GetRequests(s.ctx, s.branch, types.Filter{}, true)
	require.NoError(t, err)
	query, args, err = s.store.lastScope.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "r.status")
	assert.Equal(t, []interface{}{1}, args)

	_, _, err = s.service.GetRequests(s.ctx, s.general, types.Filter{}, true)
	require.NoError(t, err)
	assert.Nil(t, s.store.lastScope)
}

func (s *RequestServiceTestSuite) approveThroughDeputy() uuid.UUID {
	id := s.create().ID
	for _, actor := range []authz.Actor{s.branch, s.facilities, s.review, s.deputy} {
		_, err := s.act(actor, id, dto.RequestActionDTO{Action: constants.ActionApprove})
		require.NoError(s.T(), err)
	}
	return id
}

func (s *RequestServiceTestSuite) approveThroughPayment() uuid.UUID {
	id := s.approveThroughDeputy()
	_, err := s.act(s.review, id, dto.RequestActionDTO{
		Action:        constants.ActionIssueReceipt,
		ReceiptNumber: "R-" + id.String()[:8],
		ReceiptAmount: decimal.NewNullDecimal(decimal.NewFromInt(2_000_000)),
	})
	require.NoError(s.T(), err)
	_, err = s.act(s.review, id, dto.RequestActionDTO{Action: constants.ActionVerifyPayment, PaymentReference: "BANK"})
	require.NoError(s.T(), err)
	return id
}

func TestRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RequestServiceTestSuite))
}
