package seeders

import "licensing-system/pkg/constants"

const demoPassword = "123456"

var provincesData = []struct {
	Name string
	Code string
}{
	{Name: "الأمانة", Code: "AMN"},
	{Name: "صنعاء", Code: "SNA"},
	{Name: "عمران", Code: "AMR"},
	{Name: "صعدة", Code: "SAD"},
	{Name: "حجة", Code: "HAJ"},
	{Name: "الحديدة", Code: "HOD"},
	{Name: "تعز", Code: "TAZ"},
	{Name: "ذمار", Code: "DHA"},
	{Name: "إب", Code: "IBB"},
	{Name: "الضالع", Code: "DAL"},
	{Name: "لحج", Code: "LAH"},
	{Name: "البيضاء", Code: "BAY"},
	{Name: "ريمة", Code: "RIM"},
	{Name: "مأرب", Code: "MAR"},
	{Name: "الجوف", Code: "JAW"},
}

// Renewal amounts are the operation fee plus 30%.
var feeTypesData = []struct {
	Name        string
	Code        string
	Amount      int64
	Description string
}{
	{Name: "رسوم تأثيث - مستشفى عام/تخصصي", Code: "FURNISH_HOSPITAL", Amount: 100000, Description: "رسوم تأثيث للمستشفى العام والتخصصي"},
	{Name: "رسوم تأثيث - منشآت أخرى", Code: "FURNISH_OTHER", Amount: 60000, Description: "رسوم تأثيث للمستوصف والمركز التشخيصي والمختبر وعيادة الأسنان والعيادة"},
	{Name: "رسوم تشغيل - مستشفى عام/تخصصي", Code: "OPERATE_HOSPITAL", Amount: 2000000, Description: "رسوم تشغيل للمستشفى العام والتخصصي"},
	{Name: "رسوم تشغيل - مركز تشخيصي", Code: "OPERATE_DIAGNOSTIC", Amount: 100000, Description: "رسوم تشغيل للمركز التشخيصي"},
	{Name: "رسوم تشغيل - منشآت أخرى", Code: "OPERATE_OTHER", Amount: 50000, Description: "رسوم تشغيل للمستوصف والمختبر والعيادة وعيادة الأسنان والمركز التخصصي"},
	{Name: "رسوم تجديد - مستشفى عام/تخصصي", Code: "RENEW_HOSPITAL", Amount: 2600000, Description: "رسوم تجديد للمستشفى العام والتخصصي (تشغيل + 30%)"},
	{Name: "رسوم تجديد - مركز تشخيصي", Code: "RENEW_DIAGNOSTIC", Amount: 130000, Description: "رسوم تجديد للمركز التشخيصي (تشغيل + 30%)"},
	{Name: "رسوم تجديد - منشآت أخرى", Code: "RENEW_OTHER", Amount: 65000, Description: "رسوم تجديد للمستوصف والمختبر والعيادة وعيادة الأسنان والمركز التخصصي (تشغيل + 30%)"},
	{Name: "رسوم معاينة", Code: "INSPECT_FEE", Amount: 20000, Description: "رسوم معاينة الموقع"},
	{Name: "رسوم إصدار الترخيص", Code: "LICENSE_FEE", Amount: 15000, Description: "رسوم إصدار الترخيص النهائي"},
}

// ProvinceCode is set only for the branch manager, who needs a province.
var demoUsersData = []struct {
	Name         string
	Email        string
	Phone        string
	Role         constants.Role
	ProvinceCode string
}{
	{Name: "عميل تجريبي", Email: "client@ihsan.gov.ye", Phone: "777123456", Role: constants.RoleClient},
	{Name: "مدير فرع الأمانة", Email: "branch@ihsan.gov.ye", Phone: "777234567", Role: constants.RoleBranchManager, ProvinceCode: "AMN"},
	{Name: "مدير المنشآت الصحية", Email: "facilities@ihsan.gov.ye", Phone: "777345678", Role: constants.RoleFacilitiesMgr},
	{Name: "مدير المراجعة والتراخيص", Email: "review@ihsan.gov.ye", Phone: "777456789", Role: constants.RoleReviewMgr},
	{Name: "مدير الإدارة العامة", Email: "general@ihsan.gov.ye", Phone: "777567890", Role: constants.RoleGeneralMgr},
	{Name: "وكيل الوزارة", Email: "deputy@ihsan.gov.ye", Phone: "777678901", Role: constants.RoleDeputyMinister},
}
