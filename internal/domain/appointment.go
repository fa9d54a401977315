package domain

import "time"

// UpcomingAppointment is the reminder scan's join row: an in-progress request
// with a scheduled appointment, paired with the accepted offer's volunteer
// when one exists.
type UpcomingAppointment struct {
	RequestID       int32
	RequesterID     int32
	AppointmentTime time.Time
	VolunteerID     *int32
}
