package types

import "github.com/go-playground/validator/v10"

// Connection type values describing how the user relates to a contact
const (
	ConnectionRecruiter     = "recruiter"
	ConnectionHiringManager = "hiring_manager"
	ConnectionEmployee      = "employee"
	ConnectionAlumni        = "alumni"
)

// ValidConnectionTypes lists every accepted connection type.
var ValidConnectionTypes = []string{
	ConnectionRecruiter,
	ConnectionHiringManager,
	ConnectionEmployee,
	ConnectionAlumni,
}

// Contact holds the information used to personalize outreach messages
type Contact struct {
	Name              string `json:"name" validate:"required,min=1"`
	Company           string `json:"company" validate:"required,min=1"`
	Role              string `json:"role,omitempty"`
	Email             string `json:"email,omitempty" validate:"omitempty,email"`
	Location          string `json:"location,omitempty"`
	ConnectionType    string `json:"connection_type" validate:"required,oneof=recruiter hiring_manager employee alumni"`
	MutualConnections string `json:"mutual_connections,omitempty"`
	SharedExperience  string `json:"shared_experience,omitempty"`
}

// Validate validates the Contact using the validator.
func (c *Contact) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// IsValidConnectionType reports whether t is a known connection type.
func IsValidConnectionType(t string) bool {
	for _, v := range ValidConnectionTypes {
		if t == v {
			return true
		}
	}
	return false
}
