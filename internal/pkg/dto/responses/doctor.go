package responses

type Doctor struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	Speciality      string `json:"speciality"`
	Hospital        string `json:"hospital"`
	ConsultationFee int64  `json:"consultation_fee"`
	Currency        string `json:"currency"`
	WorkStart       string `json:"work_start"`
	WorkEnd         string `json:"work_end"`
	Available       bool   `json:"available"`
}
