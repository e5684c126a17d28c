package models

type Doctor struct {
	ID              string `json:"id" bson:"_id,omitempty"`
	FullName        string `json:"fullName" bson:"fullName"`
	Speciality      string `json:"speciality" bson:"speciality"`
	Hospital        string `json:"hospital" bson:"hospital"`
	ConsultationFee int64  `json:"consultationFee" bson:"consultationFee"`
	Currency        string `json:"currency" bson:"currency"`
	WorkStart       string `json:"workStart" bson:"workStart"`
	WorkEnd         string `json:"workEnd" bson:"workEnd"`
	Available       bool   `json:"available" bson:"available"`
	TimeModel       `bson:",inline"`
}
