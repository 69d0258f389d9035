package models

// StudentProfile defines the student model based on the 'student_profiles' table.
// The national ID column only ever holds ciphertext; the plaintext value is
// accepted on writes and never surfaced by any read path.
type StudentProfile struct {
	StudentID           string `json:"studentId" db:"student_id"`
	UserID              string `json:"userId" db:"user_id"` // 1:1 with a Role=Student principal
	MatricNo            string `json:"matricNo" db:"matric_no"`
	Programme           string `json:"programme" db:"programme"`
	IntakeYear          int    `json:"intakeYear" db:"intake_year"`
	Address             string `json:"address" db:"address"`
	EncryptedNationalID []byte `json:"-" db:"national_id_enc"`
	User                *User  `json:"user,omitempty"` // Relation, no db tag
}
