package workflow

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"licensing-system/internal/authz"
	"licensing-system/internal/entities"
	"licensing-system/pkg/constants"
	apperrors "licensing-system/pkg/errors"
)

type TransitionTestSuite struct {
	suite.Suite
	now    time.Time
	actors map[constants.Role]authz.Actor
}

func TestTransitionTestSuite(t *testing.T) {
	suite.Run(t, new(TransitionTestSuite))
}

func (s *TransitionTestSuite) SetupTest() {
	s.now = time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
	s.actors = make(map[constants.Role]authz.Actor)
	for _, role := range constants.Roles {
		s.actors[role] = authz.Actor{ID: uuid.New(), Role: role, IsActive: true, ProvinceID: null.IntFrom(1)}
	}
}

func (s *TransitionTestSuite) newRequest() entities.Request {
	return entities.Request{
		ID:            uuid.New(),
		RequestNumber: "2026/000001",
		Type:          constants.RequestTypeOperation,
		FacilityType:  constants.FacilityClinic,
		UserID:        s.actors[constants.RoleClient].ID,
		ProvinceID:    1,
		FeeAmount:     CalculateFee(constants.RequestTypeOperation, constants.FacilityClinic),
		Status:        constants.StatusPendingBranch,
		CurrentLevel:  constants.LevelBranch,
		CreatedAt:     s.now,
		UpdatedAt:     s.now,
	}
}

func (s *TransitionTestSuite) apply(req entities.Request, role constants.Role, cmd Command) entities.Request {
	out, err := Apply(req, s.actors[role], cmd, s.now)
	s.Require().NoError(err)
	return out.Request
}

func (s *TransitionTestSuite) approveAll(req entities.Request) entities.Request {
	for _, role := range []constants.Role{
		constants.RoleBranchManager,
		constants.RoleFacilitiesMgr,
		constants.RoleReviewMgr,
		constants.RoleDeputyMinister,
	} {
		req = s.apply(req, role, Command{Action: constants.ActionApprove})
	}
	return req
}

func receipt(number, amount string) Command {
	return Command{
		Action:        constants.ActionIssueReceipt,
		ReceiptNumber: number,
		ReceiptAmount: decimal.NewNullDecimal(decimal.RequireFromString(amount)),
	}
}

func (s *TransitionTestSuite) TestApprove_FromBranch() {
	req := s.newRequest()
	out, err := Apply(req, s.actors[constants.RoleBranchManager], Command{Action: constants.ActionApprove, Notes: " ok "}, s.now)
	s.Require().NoError(err)

	s.Equal(constants.StatusPendingFacilities, out.Request.Status)
	s.Equal(constants.LevelFacilities, out.Request.CurrentLevel)
	s.True(out.Request.Branch.Approved)
	s.Equal(s.actors[constants.RoleBranchManager].ID, out.Request.Branch.ApprovedBy.UUID)
	s.Equal(s.now, out.Request.Branch.ApprovedAt.Time)
	s.Equal("ok", out.Request.Branch.Notes.String)
	s.Equal(PendingAt(constants.LevelBranch), out.From)
	s.Equal(PendingAt(constants.LevelFacilities), out.To)

	s.Equal(constants.LogApprove, out.Log.Action)
	s.Equal(req.ID, out.Log.RequestID)
	s.Equal(s.actors[constants.RoleBranchManager].ID, out.Log.UserID)
	s.Equal("تمت الموافقة من مدير الفرع", out.Log.Description)

	s.False(req.Branch.Approved, "input request must not be modified")
	s.Equal(constants.StatusPendingBranch, req.Status)
}

func (s *TransitionTestSuite) TestApprove_FourApprovalsReachPayment() {
	req := s.approveAll(s.newRequest())

	s.Equal(constants.StatusPendingPayment, req.Status)
	s.Equal(constants.LevelCompleted, req.CurrentLevel)
	s.True(req.Branch.Approved)
	s.True(req.Facilities.Approved)
	s.True(req.Review.Approved)
	s.True(req.Deputy.Approved)
}

func (s *TransitionTestSuite) TestApprove_WrongRoleIsForbidden() {
	req := s.newRequest()
	before := req

	_, err := Apply(req, s.actors[constants.RoleFacilitiesMgr], Command{Action: constants.ActionApprove}, s.now)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.Equal(before, req)

	_, err = Apply(req, s.actors[constants.RoleClient], Command{Action: constants.ActionApprove}, s.now)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = Apply(req, s.actors[constants.RoleGeneralMgr], Command{Action: constants.ActionApprove}, s.now)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *TransitionTestSuite) TestApprove_OverrideRoles() {
	req := s.apply(s.newRequest(), constants.RoleDeputyMinister, Command{Action: constants.ActionApprove})
	s.Equal(constants.StatusPendingFacilities, req.Status)

	req = s.apply(req, constants.RoleGeneralMgr, Command{Action: constants.ActionApprove})
	s.Equal(constants.StatusPendingReview, req.Status)

	req = s.apply(req, constants.RoleGeneralMgr, Command{Action: constants.ActionApprove})
	s.Equal(constants.StatusPendingDeputy, req.Status)

	_, err := Apply(req, s.actors[constants.RoleGeneralMgr], Command{Action: constants.ActionApprove}, s.now)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *TransitionTestSuite) TestReject_FromEveryLevelIsTerminal() {
	approvers := []constants.Role{
		constants.RoleBranchManager,
		constants.RoleFacilitiesMgr,
		constants.RoleReviewMgr,
		constants.RoleDeputyMinister,
	}

	for i, level := range constants.ApprovalLevels {
		req := s.newRequest()
		for _, role := range approvers[:i] {
			req = s.apply(req, role, Command{Action: constants.ActionApprove})
		}
		s.Require().Equal(level, req.CurrentLevel)

		out, err := Apply(req, s.actors[approvers[i]], Command{Action: constants.ActionReject, Notes: "incomplete documents"}, s.now)
		s.Require().NoError(err)
		s.Equal(constants.StatusRejected, out.Request.Status)
		s.Equal(level, out.Request.CurrentLevel)
		s.Equal("incomplete documents", out.Request.Approval(level).Notes.String)
		s.False(out.Request.Approval(level).Approved)
		s.Equal(constants.LogReject, out.Log.Action)
		s.Equal("تم رفض الطلب: incomplete documents", out.Log.Description)

		for _, role := range constants.Roles {
			for _, action := range []constants.RequestAction{constants.ActionApprove, constants.ActionReject} {
				_, err := Apply(out.Request, s.actors[role], Command{Action: action}, s.now)
				s.ErrorIs(err, apperrors.ErrInvalidState, "%s %s after reject", role, action)
			}
		}
	}
}

func (s *TransitionTestSuite) TestApprove_NotApplicableAfterFinalApproval() {
	req := s.approveAll(s.newRequest())
	_, err := Apply(req, s.actors[constants.RoleDeputyMinister], Command{Action: constants.ActionApprove}, s.now)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *TransitionTestSuite) TestFullScenario() {
	req := s.newRequest()
	s.Equal(int64(50_000), req.FeeAmount)

	req = s.approveAll(req)
	s.Equal(constants.StatusPendingPayment, req.Status)

	req = s.apply(req, constants.RoleReviewMgr, receipt("RC-2026-1", "50000"))
	s.Equal("RC-2026-1", req.ReceiptNumber.String)
	s.True(req.ReceiptAmount.Valid)
	s.True(req.ReceiptAmount.Decimal.Equal(decimal.NewFromInt(50_000)))
	s.Equal(constants.StatusPendingPayment, req.Status)

	req = s.apply(req, constants.RoleReviewMgr, Command{Action: constants.ActionVerifyPayment, PaymentReference: "BANK-77"})
	s.True(req.PaymentVerified)
	s.Equal(constants.StatusCompleted, req.Status)
	s.Equal(constants.LevelCompleted, req.CurrentLevel)

	issuedAt := s.now.AddDate(1, 0, 0)
	out, err := Apply(req, s.actors[constants.RoleReviewMgr], Command{Action: constants.ActionIssueLicense, LicenseNumber: "LIC-1"}, issuedAt)
	s.Require().NoError(err)
	s.Equal("LIC-1", out.Request.LicenseNumber.String)
	s.Equal(issuedAt, out.Request.LicenseIssuedAt.Time)
	s.Equal(time.Date(2028, time.March, 14, 10, 30, 0, 0, time.UTC), out.Request.LicenseExpiryDate.Time)
	s.Equal(constants.StatusCompleted, out.Request.Status)
	s.Equal(constants.LogIssueLicense, out.Log.Action)
	s.Equal("تم إصدار الترخيص رقم LIC-1 صالح حتى 2028-03-14", out.Log.Description)
	s.True(out.To.IsTerminal())
}

func (s *TransitionTestSuite) TestLogDescriptions() {
	req := s.newRequest()
	descriptions := []string{}
	for _, role := range []constants.Role{
		constants.RoleBranchManager,
		constants.RoleFacilitiesMgr,
		constants.RoleReviewMgr,
		constants.RoleDeputyMinister,
	} {
		out, err := Apply(req, s.actors[role], Command{Action: constants.ActionApprove}, s.now)
		s.Require().NoError(err)
		descriptions = append(descriptions, out.Log.Description)
		req = out.Request
	}
	s.Equal([]string{
		"تمت الموافقة من مدير الفرع",
		"تمت الموافقة من مدير المنشآت",
		"تمت الموافقة من مدير المراجعة",
		"تمت الموافقة النهائية من الوكيل",
	}, descriptions)

	out, err := Apply(req, s.actors[constants.RoleReviewMgr], receipt(" RC-9 ", "50000"), s.now)
	s.Require().NoError(err)
	s.Equal("تم إصدار سند الحافظة رقم RC-9 بمبلغ 50000.00", out.Log.Description)

	out, err = Apply(out.Request, s.actors[constants.RoleReviewMgr], Command{Action: constants.ActionVerifyPayment, PaymentReference: "BANK-9"}, s.now)
	s.Require().NoError(err)
	s.Equal("تم التحقق من السداد، مرجع الدفع BANK-9", out.Log.Description)

	rejected, err := Apply(s.newRequest(), s.actors[constants.RoleBranchManager], Command{Action: constants.ActionReject}, s.now)
	s.Require().NoError(err)
	s.Equal("تم رفض الطلب", rejected.Log.Description)
}

func (s *TransitionTestSuite) TestIssueReceipt_SecondCallDoesNotOverwrite() {
	req := s.approveAll(s.newRequest())
	req = s.apply(req, constants.RoleReviewMgr, receipt("RC-1", "50000"))

	_, err := Apply(req, s.actors[constants.RoleReviewMgr], receipt("RC-2", "1"), s.now)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.Equal("RC-1", req.ReceiptNumber.String)
}

func (s *TransitionTestSuite) TestPaymentActions_OnlyReviewManager() {
	req := s.approveAll(s.newRequest())
	for _, role := range constants.Roles {
		if role == constants.RoleReviewMgr {
			continue
		}
		_, err := Apply(req, s.actors[role], receipt("RC-1", "10"), s.now)
		s.ErrorIs(err, apperrors.ErrForbidden, role)
	}
}

func (s *TransitionTestSuite) TestPaymentActions_OutOfOrder() {
	req := s.approveAll(s.newRequest())

	_, err := Apply(req, s.actors[constants.RoleReviewMgr], Command{Action: constants.ActionVerifyPayment, PaymentReference: "X"}, s.now)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	_, err = Apply(req, s.actors[constants.RoleReviewMgr], Command{Action: constants.ActionIssueLicense, LicenseNumber: "L"}, s.now)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	pending := s.newRequest()
	_, err = Apply(pending, s.actors[constants.RoleReviewMgr], receipt("RC-1", "10"), s.now)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	req = s.apply(req, constants.RoleReviewMgr, receipt("RC-1", "10"))
	req = s.apply(req, constants.RoleReviewMgr, Command{Action: constants.ActionVerifyPayment, PaymentReference: "X"})
	_, err = Apply(req, s.actors[constants.RoleReviewMgr], Command{Action: constants.ActionVerifyPayment, PaymentReference: "Y"}, s.now)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	req = s.apply(req, constants.RoleReviewMgr, Command{Action: constants.ActionIssueLicense, LicenseNumber: "L-1"})
	_, err = Apply(req, s.actors[constants.RoleReviewMgr], Command{Action: constants.ActionIssueLicense, LicenseNumber: "L-2"}, s.now)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *TransitionTestSuite) TestPayloadValidation() {
	req := s.approveAll(s.newRequest())
	reviewer := s.actors[constants.RoleReviewMgr]

	cases := []Command{
		{Action: constants.ActionIssueReceipt, ReceiptAmount: decimal.NewNullDecimal(decimal.NewFromInt(10))},
		{Action: constants.ActionIssueReceipt, ReceiptNumber: "RC-1"},
		receipt("RC-1", "0"),
		receipt("RC-1", "-5"),
		receipt("RC-1", "10000000000"),
		receipt("   ", "10"),
	}
	for _, cmd := range cases {
		_, err := Apply(req, reviewer, cmd, s.now)
		s.True(apperrors.IsInvalidInput(err), "expected validation error, got %v", err)
	}

	req = s.apply(req, constants.RoleReviewMgr, receipt("RC-1", "10"))
	_, err := Apply(req, reviewer, Command{Action: constants.ActionVerifyPayment}, s.now)
	s.True(apperrors.IsInvalidInput(err))

	req = s.apply(req, constants.RoleReviewMgr, Command{Action: constants.ActionVerifyPayment, PaymentReference: "P"})
	_, err = Apply(req, reviewer, Command{Action: constants.ActionIssueLicense}, s.now)
	s.True(apperrors.IsInvalidInput(err))
}

func (s *TransitionTestSuite) TestCheckOrder() {
	req := s.newRequest()

	_, err := Apply(req, s.actors[constants.RoleClient], Command{Action: "archive"}, s.now)
	s.True(apperrors.IsInvalidInput(err), "unknown action is a validation error")

	// Not applicable wins over forbidden.
	_, err = Apply(req, s.actors[constants.RoleClient], Command{Action: constants.ActionIssueReceipt}, s.now)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	// Forbidden wins over a missing payload.
	paying := s.approveAll(s.newRequest())
	_, err = Apply(paying, s.actors[constants.RoleBranchManager], Command{Action: constants.ActionIssueReceipt}, s.now)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *TransitionTestSuite) TestCorruptRowIsRefused() {
	req := s.newRequest()
	req.CurrentLevel = constants.LevelDeputy
	_, err := Apply(req, s.actors[constants.RoleDeputyMinister], Command{Action: constants.ActionApprove}, s.now)
	s.ErrorIs(err, apperrors.ErrCorruptState)
}

func (s *TransitionTestSuite) TestAvailable() {
	req := s.newRequest()
	s.Equal([]constants.RequestAction{constants.ActionApprove, constants.ActionReject},
		Available(req, s.actors[constants.RoleBranchManager]))
	s.Empty(Available(req, s.actors[constants.RoleClient]))

	req = s.approveAll(req)
	s.Equal([]constants.RequestAction{constants.ActionIssueReceipt}, Available(req, s.actors[constants.RoleReviewMgr]))
	s.Empty(Available(req, s.actors[constants.RoleDeputyMinister]))
}
