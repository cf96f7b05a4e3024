package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"licensing-system/internal/authz"
	"licensing-system/internal/entities"
	"licensing-system/pkg/constants"
	apperrors "licensing-system/pkg/errors"
)

// Command is an action against a request together with its payload.
type Command struct {
	Action           constants.RequestAction
	Notes            string
	ReceiptNumber    string
	ReceiptAmount    decimal.NullDecimal
	PaymentReference string
	LicenseNumber    string
}

// Outcome is the result of a successful transition. Request is an updated copy;
// the caller persists it together with Log.
type Outcome struct {
	Request entities.Request
	From    Phase
	To      Phase
	Log     entities.ActionLog
}

// receipt_amount is numeric(12,2).
var maxReceiptAmount = decimal.New(1, 10)

var nextLevel = map[constants.Level]Phase{
	constants.LevelBranch:     PendingAt(constants.LevelFacilities),
	constants.LevelFacilities: PendingAt(constants.LevelReview),
	constants.LevelReview:     PendingAt(constants.LevelDeputy),
	constants.LevelDeputy:     PostApproval(StageAwaitingReceipt),
}

// Apply validates cmd against the request's phase and the actor's role and computes the
// next state. Checks run in order: unknown action, applicability to the phase, role,
// payload. The input request is never modified.
func Apply(req entities.Request, actor authz.Actor, cmd Command, now time.Time) (Outcome, error) {
	if !cmd.Action.IsValid() {
		return Outcome{}, apperrors.NewFieldError("action", fmt.Sprintf("unknown action %q", cmd.Action))
	}

	from, err := PhaseOf(&req)
	if err != nil {
		return Outcome{}, err
	}

	if err := checkApplicable(from, cmd.Action); err != nil {
		return Outcome{}, err
	}
	if err := checkRole(from, actor.Role, cmd.Action); err != nil {
		return Outcome{}, err
	}
	if err := checkPayload(cmd); err != nil {
		return Outcome{}, err
	}

	next := req
	var (
		to          Phase
		tag         constants.LogTag
		description string
	)

	switch cmd.Action {
	case constants.ActionApprove:
		level, _ := from.PendingLevel()
		approval := next.Approval(level)
		approval.Approved = true
		approval.ApprovedBy = uuid.NullUUID{UUID: actor.ID, Valid: true}
		approval.ApprovedAt = null.TimeFrom(now)
		approval.Notes = optionalString(cmd.Notes)
		to = nextLevel[level]
		tag = constants.LogApprove
		description = fmt.Sprintf(constants.LogTextApproved, constants.Label(constants.LevelLabels, level))
		if to.Kind() == KindPostApproval {
			description = fmt.Sprintf(constants.LogTextFinalApproval, constants.Label(constants.LevelLabels, level))
		}

	case constants.ActionReject:
		level, _ := from.PendingLevel()
		next.Approval(level).Notes = optionalString(cmd.Notes)
		to = Rejected(level)
		tag = constants.LogReject
		description = constants.LogTextRejected
		if notes := strings.TrimSpace(cmd.Notes); notes != "" {
			description += ": " + notes
		}

	case constants.ActionIssueReceipt:
		receipt := strings.TrimSpace(cmd.ReceiptNumber)
		next.ReceiptNumber = null.StringFrom(receipt)
		next.ReceiptAmount = decimal.NewNullDecimal(cmd.ReceiptAmount.Decimal.Round(2))
		next.ReceiptIssuedAt = null.TimeFrom(now)
		to = PostApproval(StageAwaitingPayment)
		tag = constants.LogIssueReceipt
		description = fmt.Sprintf(constants.LogTextReceiptIssued, receipt, cmd.ReceiptAmount.Decimal.StringFixed(2))

	case constants.ActionVerifyPayment:
		reference := strings.TrimSpace(cmd.PaymentReference)
		next.PaymentReference = null.StringFrom(reference)
		next.PaymentVerified = true
		next.PaidAt = null.TimeFrom(now)
		to = PostApproval(StageAwaitingLicense)
		tag = constants.LogVerifyPayment
		description = fmt.Sprintf(constants.LogTextPaymentVerified, reference)

	case constants.ActionIssueLicense:
		license := strings.TrimSpace(cmd.LicenseNumber)
		expiry := now.AddDate(1, 0, 0)
		next.LicenseNumber = null.StringFrom(license)
		next.LicenseIssuedAt = null.TimeFrom(now)
		next.LicenseExpiryDate = null.TimeFrom(expiry)
		to = PostApproval(StageDone)
		tag = constants.LogIssueLicense
		description = fmt.Sprintf(constants.LogTextLicenseIssued, license, expiry.Format("2006-01-02"))
	}

	next.Status = to.Status()
	next.CurrentLevel = to.CurrentLevel()
	next.UpdatedAt = now

	return Outcome{
		Request: next,
		From:    from,
		To:      to,
		Log: entities.ActionLog{
			RequestID:   req.ID,
			UserID:      actor.ID,
			Action:      tag,
			Description: description,
			CreatedAt:   now,
		},
	}, nil
}

// Available lists the actions the actor could take on the request right now, ignoring payload.
func Available(req entities.Request, actor authz.Actor) []constants.RequestAction {
	from, err := PhaseOf(&req)
	if err != nil {
		return nil
	}
	var out []constants.RequestAction
	for _, action := range constants.RequestActions {
		if checkApplicable(from, action) == nil && checkRole(from, actor.Role, action) == nil {
			out = append(out, action)
		}
	}
	return out
}

func checkApplicable(p Phase, action constants.RequestAction) error {
	ok := false
	switch action {
	case constants.ActionApprove, constants.ActionReject:
		_, ok = p.PendingLevel()
	case constants.ActionIssueReceipt:
		stage, post := p.Stage()
		ok = post && stage == StageAwaitingReceipt
	case constants.ActionVerifyPayment:
		stage, post := p.Stage()
		ok = post && stage == StageAwaitingPayment
	case constants.ActionIssueLicense:
		stage, post := p.Stage()
		ok = post && stage == StageAwaitingLicense
	}
	if !ok {
		return fmt.Errorf("%w: cannot %s a request in %s", apperrors.ErrInvalidState, action, p)
	}
	return nil
}

func checkRole(p Phase, role constants.Role, action constants.RequestAction) error {
	switch action {
	case constants.ActionApprove, constants.ActionReject:
		level, _ := p.PendingLevel()
		if authz.CanApproveAtLevel(role, level) {
			return nil
		}
		return fmt.Errorf("%w: role %s cannot %s at %s level", apperrors.ErrForbidden, role, action, level)
	default:
		if authz.CanHandlePayment(role) {
			return nil
		}
		return fmt.Errorf("%w: role %s cannot %s", apperrors.ErrForbidden, role, action)
	}
}

func checkPayload(cmd Command) error {
	switch cmd.Action {
	case constants.ActionIssueReceipt:
		if strings.TrimSpace(cmd.ReceiptNumber) == "" {
			return apperrors.NewFieldError("receipt_number", "is required")
		}
		if !cmd.ReceiptAmount.Valid {
			return apperrors.NewFieldError("receipt_amount", "is required")
		}
		if !cmd.ReceiptAmount.Decimal.IsPositive() {
			return apperrors.NewFieldError("receipt_amount", "must be greater than zero")
		}
		if cmd.ReceiptAmount.Decimal.GreaterThanOrEqual(maxReceiptAmount) {
			return apperrors.NewFieldError("receipt_amount", "is too large")
		}
	case constants.ActionVerifyPayment:
		if strings.TrimSpace(cmd.PaymentReference) == "" {
			return apperrors.NewFieldError("payment_reference", "is required")
		}
	case constants.ActionIssueLicense:
		if strings.TrimSpace(cmd.LicenseNumber) == "" {
			return apperrors.NewFieldError("license_number", "is required")
		}
	}
	return nil
}

func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
