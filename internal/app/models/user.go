package models

type User struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	FullName  string `json:"fullName" bson:"fullName"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Role      string `json:"role" bson:"role"`
	DoctorID  string `json:"doctorId,omitempty" bson:"doctorId,omitempty"`
	TimeModel `bson:",inline"`
}
