package constants

//============== ROLES ==============

type Role string

const (
	RoleClient         Role = "CLIENT"
	RoleBranchManager  Role = "BRANCH_MANAGER"
	RoleFacilitiesMgr  Role = "FACILITIES_MGR"
	RoleReviewMgr      Role = "REVIEW_MGR"
	RoleGeneralMgr     Role = "GENERAL_MGR"
	RoleDeputyMinister Role = "DEPUTY_MINISTER"
)

var Roles = []Role{
	RoleClient,
	RoleBranchManager,
	RoleFacilitiesMgr,
	RoleReviewMgr,
	RoleGeneralMgr,
	RoleDeputyMinister,
}

func (r Role) IsValid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

//============== REQUEST CLASSIFICATION ==============

type RequestType string

const (
	RequestTypeFurnishing RequestType = "FURNISHING"
	RequestTypeOperation  RequestType = "OPERATION"
	RequestTypeRenewal    RequestType = "RENEWAL"
)

var RequestTypes = []RequestType{RequestTypeFurnishing, RequestTypeOperation, RequestTypeRenewal}

func (t RequestType) IsValid() bool {
	for _, v := range RequestTypes {
		if v == t {
			return true
		}
	}
	return false
}

type FacilityType string

const (
	FacilitySpecializedHospital FacilityType = "SPECIALIZED_HOSPITAL"
	FacilityGeneralHospital     FacilityType = "GENERAL_HOSPITAL"
	FacilitySpecializedCenter   FacilityType = "SPECIALIZED_CENTER"
	FacilityPolyclinic          FacilityType = "POLYCLINIC"
	FacilityClinic              FacilityType = "CLINIC"
	FacilityLaboratory          FacilityType = "LABORATORY"
	FacilityDiagnosticCenter    FacilityType = "DIAGNOSTIC_CENTER"
	FacilityDentalClinic        FacilityType = "DENTAL_CLINIC"
)

var FacilityTypes = []FacilityType{
	FacilitySpecializedHospital,
	FacilityGeneralHospital,
	FacilitySpecializedCenter,
	FacilityPolyclinic,
	FacilityClinic,
	FacilityLaboratory,
	FacilityDiagnosticCenter,
	FacilityDentalClinic,
}

func (f FacilityType) IsValid() bool {
	for _, v := range FacilityTypes {
		if v == f {
			return true
		}
	}
	return false
}

func (f FacilityType) IsHospital() bool {
	return f == FacilityGeneralHospital || f == FacilitySpecializedHospital
}

//============== WORKFLOW STATE ==============

// RequestStatus and Level are the persisted pair. Code outside the storage
// boundary works with workflow.Phase instead.
type RequestStatus string

const (
	StatusPendingBranch     RequestStatus = "PENDING_BRANCH"
	StatusPendingFacilities RequestStatus = "PENDING_FACILITIES"
	StatusPendingReview     RequestStatus = "PENDING_REVIEW"
	StatusPendingDeputy     RequestStatus = "PENDING_DEPUTY"
	StatusPendingPayment    RequestStatus = "PENDING_PAYMENT"
	StatusCompleted         RequestStatus = "COMPLETED"
	StatusRejected          RequestStatus = "REJECTED"
)

var RequestStatuses = []RequestStatus{
	StatusPendingBranch,
	StatusPendingFacilities,
	StatusPendingReview,
	StatusPendingDeputy,
	StatusPendingPayment,
	StatusCompleted,
	StatusRejected,
}

func (s RequestStatus) IsValid() bool {
	for _, v := range RequestStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Level string

const (
	LevelBranch     Level = "BRANCH"
	LevelFacilities Level = "FACILITIES"
	LevelReview     Level = "REVIEW"
	LevelDeputy     Level = "DEPUTY"
	LevelCompleted  Level = "COMPLETED"
)

// ApprovalLevels in chain order.
var ApprovalLevels = []Level{LevelBranch, LevelFacilities, LevelReview, LevelDeputy}

func (l Level) IsApproval() bool {
	for _, v := range ApprovalLevels {
		if v == l {
			return true
		}
	}
	return false
}

//============== ACTIONS ==============

type RequestAction string

const (
	ActionApprove       RequestAction = "approve"
	ActionReject        RequestAction = "reject"
	ActionIssueReceipt  RequestAction = "issue_receipt"
	ActionVerifyPayment RequestAction = "verify_payment"
	ActionIssueLicense  RequestAction = "issue_license"
)

var RequestActions = []RequestAction{
	ActionApprove,
	ActionReject,
	ActionIssueReceipt,
	ActionVerifyPayment,
	ActionIssueLicense,
}

func (a RequestAction) IsValid() bool {
	for _, v := range RequestActions {
		if v == a {
			return true
		}
	}
	return false
}

// LogTag is the action tag stored in action_logs.
type LogTag string

const (
	LogCreate        LogTag = "CREATE"
	LogApprove       LogTag = "APPROVE"
	LogReject        LogTag = "REJECT"
	LogIssueReceipt  LogTag = "ISSUE_RECEIPT"
	LogVerifyPayment LogTag = "VERIFY_PAYMENT"
	LogIssueLicense  LogTag = "ISSUE_LICENSE"
)

var LogTags = []LogTag{LogCreate, LogApprove, LogReject, LogIssueReceipt, LogVerifyPayment, LogIssueLicense}

func (t LogTag) IsValid() bool {
	for _, v := range LogTags {
		if v == t {
			return true
		}
	}
	return false
}

//============== CACHE KEYS ==============

const (
	// Format: identity:<userID> -> serialized actor
	CacheKeyIdentity = "identity:%s"

	// Format: stats:v<generation>:<role>:<userID> -> serialized dashboard
	CacheKeyStats = "stats:v%d:%s:%s"

	// Generation counter; bumping it orphans every cached dashboard.
	CacheKeyStatsVersion = "stats:version"

	// Format: login_attempts:<email> -> count
	CacheKeyLoginAttempts = "login_attempts:%s"

	// Format: lockout:<email> -> "locked"
	CacheKeyLockout = "lockout:%s"
)
