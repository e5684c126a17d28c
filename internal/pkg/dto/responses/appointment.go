package responses

import "time"

type Appointment struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patient_id"`
	DoctorID    string     `json:"doctor_id"`
	Hospital    string     `json:"hospital"`
	Date        string     `json:"date"`
	TimeSlot    string     `json:"time_slot"`
	Status      string     `json:"status"`
	Symptoms    string     `json:"symptoms,omitempty"`
	PaymentRef  string     `json:"payment_ref,omitempty"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
	Fee         int64      `json:"fee"`
	Currency    string     `json:"currency"`
	Attachments []string   `json:"attachments,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AvailableTimeSlots struct {
	DoctorID  string   `json:"doctor_id"`
	Date      string   `json:"date"`
	TimeSlots []string `json:"time_slots"`
}

type UploadAttachment struct {
	AppointmentID string `json:"appointment_id"`
	ObjectName    string `json:"object_name"`
}
