package models

import "time"

type TimeModel struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusLocked    AppointmentStatus = "locked"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ActiveAppointmentStatuses are the statuses that occupy a (doctor, hospital,
// date, time) tuple. The uniqueness index on the appointments collection is
// partial over exactly this set.
var ActiveAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusLocked,
	AppointmentStatusConfirmed,
}

// Terminal reports whether no further booking transition may leave s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanTransition is the booking transition table. Lock is restricted to
// pending and locked (re-lock refreshes the expiry during a payment retry);
// confirm and release only apply to a locked slot. Nothing leaves a terminal
// status, and confirmed never moves back to pending or locked.
func CanTransition(from, to AppointmentStatus) bool {
	switch from {
	case AppointmentStatusPending:
		return to == AppointmentStatusLocked || to == AppointmentStatusCancelled
	case AppointmentStatusLocked:
		return to == AppointmentStatusLocked ||
			to == AppointmentStatusConfirmed ||
			to == AppointmentStatusPending ||
			to == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return to == AppointmentStatusCompleted || to == AppointmentStatusCancelled
	default:
		return false
	}
}

// Appointment is one bookable (doctor, hospital, date, time) slot and its
// lifecycle state. Fee is snapshotted from the doctor at creation time.
type Appointment struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	PatientID   string            `json:"patientId" bson:"patientId"`
	DoctorID    string            `json:"doctorId" bson:"doctorId"`
	Hospital    string            `json:"hospital" bson:"hospital"`
	Date        string            `json:"date" bson:"date"`
	TimeSlot    string            `json:"timeSlot" bson:"timeSlot"`
	Status      AppointmentStatus `json:"status" bson:"status"`
	Symptoms    string            `json:"symptoms,omitempty" bson:"symptoms,omitempty"`
	PaymentRef  string            `json:"paymentRef,omitempty" bson:"paymentRef,omitempty"`
	LockedUntil *time.Time        `json:"lockedUntil,omitempty" bson:"lockedUntil,omitempty"`
	Fee         int64             `json:"fee" bson:"fee"`
	Currency    string            `json:"currency" bson:"currency"`
	Attachments []string          `json:"attachments,omitempty" bson:"attachments,omitempty"`
	TimeModel   `bson:",inline"`
}
