package email

const (
	subjectVisitApproved        = "Your property visit is confirmed"
	subjectVisitAssignmentFmt   = "Visit assignment: %s"
	subjectVisitDenied          = "Update on your visit request"
	subjectVisitCompleted       = "Thank you for visiting"
	subjectVisitCancelled       = "Your visit has been cancelled"
	subjectVisitReminderFmt     = "Reminder: your visit to %s"
	subjectReservationApproved  = "Your unit reservation is confirmed"
	subjectReservationDenied    = "Update on your reservation request"
	subjectReservationCompleted = "Your reservation is finalized"
	subjectReservationCancelled = "Your reservation has been cancelled"
	subjectAgentUpdateFmt       = "Update on %s"
)
