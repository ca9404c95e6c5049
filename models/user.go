package models

import "time"

// User roles.
const (
	RolePatient      = "patient"
	RoleProfessional = "professional"
)

// User is the account document shared by patients and professionals.
type User struct {
	ID                     string    `json:"id" bson:"id"`
	FirstName              string    `json:"firstName" bson:"firstName"`
	LastName               string    `json:"lastName" bson:"lastName"`
	Email                  string    `json:"email" bson:"email"`
	Password               string    `json:"-" bson:"password"`
	PhoneNumber            string    `json:"phoneNumber" bson:"phoneNumber"`
	Role                   string    `json:"role" bson:"role"`
	Specialization         string    `json:"specialization,omitempty" bson:"specialization,omitempty"`
	IsEmailVerified        bool      `json:"isEmailVerified" bson:"isEmailVerified"`
	EmailVerifyToken       string    `json:"-" bson:"emailVerifyToken,omitempty"`
	EmailVerifyTokenExpiry time.Time `json:"-" bson:"emailVerifyTokenExpiry,omitempty"`
	FCMToken               string    `json:"-" bson:"fcmToken,omitempty"`
	CreatedAt              time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserInfo is the public projection embedded in populated responses.
type UserInfo struct {
	ID             string `json:"id" bson:"id"`
	FirstName      string `json:"firstName" bson:"firstName"`
	LastName       string `json:"lastName" bson:"lastName"`
	Email          string `json:"email" bson:"email"`
	Specialization string `json:"specialization,omitempty" bson:"specialization,omitempty"`
}

// Info projects the public fields of a user.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Specialization: u.Specialization,
	}
}

// PatientProfile holds patient-specific profile data.
type PatientProfile struct {
	ID               string    `json:"id" bson:"id"`
	UserID           string    `json:"userId" bson:"userId"`
	DateOfBirth      string    `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Gender           string    `json:"gender,omitempty" bson:"gender,omitempty"`
	PreferredDoctors []string  `json:"preferredDoctors" bson:"preferredDoctors"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProfessionalProfile holds professional-specific profile data.
type ProfessionalProfile struct {
	ID             string    `json:"id" bson:"id"`
	UserID         string    `json:"userId" bson:"userId"`
	Specialization string    `json:"specialization" bson:"specialization"`
	LicenseNumber  string    `json:"licenseNumber" bson:"licenseNumber"`
	Bio            string    `json:"bio,omitempty" bson:"bio,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
	Role            string `json:"role" binding:"required,oneof=patient professional"`
	DateOfBirth     string `json:"dateOfBirth"`
	Gender          string `json:"gender"`
}

// LoginRequest is the signin payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries optional profile mutations.
type UpdateProfileRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PhoneNumber    string `json:"phoneNumber"`
	Specialization string `json:"specialization"`
	Bio            string `json:"bio"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender"`
	FCMToken       string `json:"fcmToken"`
}

// AddPreferredDoctorRequest names the doctor to save on a patient's list.
type AddPreferredDoctorRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
