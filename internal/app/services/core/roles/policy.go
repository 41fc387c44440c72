package roles

import "medconsult-service/internal/pkg/constvars"

// Operations guarded by the policy table.
const (
	OperationLogout                 = "auth.logout"
	OperationViewProfile            = "users.view_profile"
	OperationUpdateProfile          = "users.update_profile"
	OperationCreateService          = "services.create"
	OperationListPendingDoctors     = "doctors.list_pending"
	OperationViewOwnDoctorProfile   = "doctors.view_own_profile"
	OperationSubmitDoctorProfile    = "doctors.submit_profile"
	OperationDecideDoctorApproval   = "doctors.decide_approval"
	OperationDownloadDoctorEvidence = "doctors.download_evidence"
	OperationCreateAppointment      = "appointments.create"
	OperationListAppointments       = "appointments.list"
	OperationAssignAppointment      = "appointments.assign_doctor"
	OperationRequestPayment         = "appointments.request_payment"
	OperationCreateNotification     = "notifications.create"
	OperationListNotifications      = "notifications.list"
	OperationMarkNotificationRead   = "notifications.mark_read"
)

var (
	anyRole           = []string{constvars.RolePatient, constvars.RoleDoctor, constvars.RoleAdministrator}
	administratorOnly = []string{constvars.RoleAdministrator}
)

// Policies maps each operation to the exact set of roles allowed to run it.
// There is no role hierarchy: an administrator is not implicitly a doctor.
var Policies = map[string][]string{
	OperationLogout:                 anyRole,
	OperationViewProfile:            anyRole,
	OperationUpdateProfile:          anyRole,
	OperationCreateService:          administratorOnly,
	OperationListPendingDoctors:     administratorOnly,
	OperationViewOwnDoctorProfile:   {constvars.RoleDoctor},
	OperationSubmitDoctorProfile:    {constvars.RoleDoctor},
	OperationDecideDoctorApproval:   administratorOnly,
	OperationDownloadDoctorEvidence: {constvars.RoleAdministrator, constvars.RoleDoctor},
	OperationCreateAppointment:      {constvars.RolePatient},
	OperationListAppointments:       anyRole,
	OperationAssignAppointment:      administratorOnly,
	OperationRequestPayment:         {constvars.RolePatient},
	OperationCreateNotification:     administratorOnly,
	OperationListNotifications:      anyRole,
	OperationMarkNotificationRead:   anyRole,
}
