package workflow

import (
	"fmt"

	"licensing-system/internal/entities"
	"licensing-system/pkg/constants"
	apperrors "licensing-system/pkg/errors"
)

type Kind int

const (
	KindPending Kind = iota + 1
	KindPostApproval
	KindRejected
)

// Stage is the post-approval sub-state, ordered.
type Stage int

const (
	StageAwaitingReceipt Stage = iota + 1
	StageAwaitingPayment
	StageAwaitingLicense
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingReceipt:
		return "AWAITING_RECEIPT"
	case StageAwaitingPayment:
		return "AWAITING_PAYMENT"
	case StageAwaitingLicense:
		return "AWAITING_LICENSE"
	case StageDone:
		return "DONE"
	}
	return "UNKNOWN"
}

// Phase is the lifecycle position of a request. The zero value is invalid.
type Phase struct {
	kind  Kind
	level constants.Level
	stage Stage
}

func PendingAt(level constants.Level) Phase {
	return Phase{kind: KindPending, level: level}
}

func PostApproval(stage Stage) Phase {
	return Phase{kind: KindPostApproval, stage: stage}
}

func Rejected(level constants.Level) Phase {
	return Phase{kind: KindRejected, level: level}
}

func (p Phase) Kind() Kind { return p.kind }

// PendingLevel returns the level awaiting approval, if any.
func (p Phase) PendingLevel() (constants.Level, bool) {
	if p.kind != KindPending {
		return "", false
	}
	return p.level, true
}

// Stage returns the post-approval sub-state, if any.
func (p Phase) Stage() (Stage, bool) {
	if p.kind != KindPostApproval {
		return 0, false
	}
	return p.stage, true
}

func (p Phase) IsTerminal() bool {
	return p.kind == KindRejected || (p.kind == KindPostApproval && p.stage == StageDone)
}

// Status derives the persisted status column.
func (p Phase) Status() constants.RequestStatus {
	switch p.kind {
	case KindPending:
		switch p.level {
		case constants.LevelBranch:
			return constants.StatusPendingBranch
		case constants.LevelFacilities:
			return constants.StatusPendingFacilities
		case constants.LevelReview:
			return constants.StatusPendingReview
		case constants.LevelDeputy:
			return constants.StatusPendingDeputy
		}
	case KindPostApproval:
		if p.stage == StageAwaitingReceipt || p.stage == StageAwaitingPayment {
			return constants.StatusPendingPayment
		}
		return constants.StatusCompleted
	case KindRejected:
		return constants.StatusRejected
	}
	return ""
}

// CurrentLevel derives the persisted current_level column.
func (p Phase) CurrentLevel() constants.Level {
	if p.kind == KindPostApproval {
		return constants.LevelCompleted
	}
	return p.level
}

func (p Phase) String() string {
	switch p.kind {
	case KindPending:
		return fmt.Sprintf("PENDING(%s)", p.level)
	case KindPostApproval:
		return fmt.Sprintf("POST_APPROVAL(%s)", p.stage)
	case KindRejected:
		return fmt.Sprintf("REJECTED(%s)", p.level)
	}
	return "INVALID"
}

// PhaseOf rebuilds the phase of a stored request and rejects inconsistent rows.
func PhaseOf(req *entities.Request) (Phase, error) {
	corrupt := func(detail string) (Phase, error) {
		return Phase{}, fmt.Errorf("%w: request %s has status=%s level=%s (%s)",
			apperrors.ErrCorruptState, req.ID, req.Status, req.CurrentLevel, detail)
	}

	switch req.Status {
	case constants.StatusPendingBranch,
		constants.StatusPendingFacilities,
		constants.StatusPendingReview,
		constants.StatusPendingDeputy:
		p := PendingAt(req.CurrentLevel)
		if !req.CurrentLevel.IsApproval() || p.Status() != req.Status {
			return corrupt("level does not match status")
		}
		return p, nil

	case constants.StatusRejected:
		if !req.CurrentLevel.IsApproval() {
			return corrupt("rejected outside an approval level")
		}
		return Rejected(req.CurrentLevel), nil

	case constants.StatusPendingPayment:
		if req.CurrentLevel != constants.LevelCompleted {
			return corrupt("payment pending before final approval")
		}
		if req.PaymentVerified || req.LicenseNumber.Valid {
			return corrupt("payment pending with verified payment or license")
		}
		if req.ReceiptNumber.Valid {
			return PostApproval(StageAwaitingPayment), nil
		}
		return PostApproval(StageAwaitingReceipt), nil

	case constants.StatusCompleted:
		if req.CurrentLevel != constants.LevelCompleted {
			return corrupt("completed before final approval")
		}
		if !req.PaymentVerified {
			return corrupt("completed without verified payment")
		}
		if req.LicenseNumber.Valid {
			return PostApproval(StageDone), nil
		}
		return PostApproval(StageAwaitingLicense), nil
	}

	return corrupt("unknown status")
}
