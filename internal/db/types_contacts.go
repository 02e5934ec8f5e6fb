package db

import "github.com/jordan/job-search-agent/internal/types"

// Contact is a stored outreach contact
type Contact struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Company           string `json:"company"`
	Role              string `json:"role,omitempty"`
	Email             string `json:"email,omitempty"`
	Location          string `json:"location,omitempty"`
	ConnectionType    string `json:"connection_type"`
	MutualConnections string `json:"mutual_connections,omitempty"`
	SharedExperience  string `json:"shared_experience,omitempty"`
	CreatedAt         string `json:"created_at"`
}

// ToContact converts the row into the domain contact used by messaging
func (c *Contact) ToContact() *types.Contact {
	return &types.Contact{
		Name:              c.Name,
		Company:           c.Company,
		Role:              c.Role,
		Email:             c.Email,
		Location:          c.Location,
		ConnectionType:    c.ConnectionType,
		MutualConnections: c.MutualConnections,
		SharedExperience:  c.SharedExperience,
	}
}
