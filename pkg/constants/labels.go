package constants

// Arabic display labels used in exported reports and the action log.

var StatusLabels = map[RequestStatus]string{
	StatusPendingBranch:     "معلق لدى مدير الفرع",
	StatusPendingFacilities: "معلق لدى مدير المنشآت",
	StatusPendingReview:     "معلق لدى المراجعة",
	StatusPendingDeputy:     "معلق لدى الوكيل",
	StatusPendingPayment:    "في انتظار السداد",
	StatusCompleted:         "مكتمل",
	StatusRejected:          "مرفوض",
}

var RequestTypeLabels = map[RequestType]string{
	RequestTypeFurnishing: "تأثيث",
	RequestTypeOperation:  "تشغيل",
	RequestTypeRenewal:    "تجديد",
}

var FacilityTypeLabels = map[FacilityType]string{
	FacilitySpecializedHospital: "مستشفى تخصصي",
	FacilityGeneralHospital:     "مستشفى عام",
	FacilitySpecializedCenter:   "مركز تخصصي",
	FacilityPolyclinic:          "مستوصف",
	FacilityClinic:              "عيادة",
	FacilityLaboratory:          "مختبر",
	FacilityDiagnosticCenter:    "مركز تشخيصي",
	FacilityDentalClinic:        "عيادة أسنان",
}

var RoleLabels = map[Role]string{
	RoleClient:         "مقدم طلب",
	RoleBranchManager:  "مدير الفرع",
	RoleFacilitiesMgr:  "مدير المنشآت",
	RoleReviewMgr:      "مدير المراجعة",
	RoleGeneralMgr:     "المدير العام",
	RoleDeputyMinister: "وكيل الوزارة",
}

// LevelLabels name the reviewer who signs off at each approval level.
var LevelLabels = map[Level]string{
	LevelBranch:     "مدير الفرع",
	LevelFacilities: "مدير المنشآت",
	LevelReview:     "مدير المراجعة",
	LevelDeputy:     "الوكيل",
}

// Action log descriptions.
const (
	LogTextCreated         = "تم إنشاء الطلب رقم %s برسوم %d"
	LogTextApproved        = "تمت الموافقة من %s"
	LogTextFinalApproval   = "تمت الموافقة النهائية من %s"
	LogTextRejected        = "تم رفض الطلب"
	LogTextReceiptIssued   = "تم إصدار سند الحافظة رقم %s بمبلغ %s"
	LogTextPaymentVerified = "تم التحقق من السداد، مرجع الدفع %s"
	LogTextLicenseIssued   = "تم إصدار الترخيص رقم %s صالح حتى %s"
)

// Label returns the display label of a known code, or the code itself.
func Label[K ~string](labels map[K]string, code K) string {
	if l, ok := labels[code]; ok {
		return l
	}
	return string(code)
}
