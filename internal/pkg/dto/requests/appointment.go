package requests

type CreateAppointment struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Hospital string `json:"hospital" validate:"required,min=2,max=120"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required,datetime=15:04"`
	Symptoms string `json:"symptoms" validate:"max=2000"`
}
