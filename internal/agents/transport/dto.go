package transport

import "time"

// AgentResponse is the API representation of an agent.
type AgentResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	LicenseNumber *string `json:"licenseNumber,omitempty"`
	Active        bool    `json:"active"`
}

// AssignedAgentResponse is an agent snapshot attached to a request. The
// fields come from the assignment row, not the current user record.
type AssignedAgentResponse struct {
	AgentID       string    `json:"agentId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone,omitempty"`
	LicenseNumber *string   `json:"licenseNumber,omitempty"`
	AssignedAt    time.Time `json:"assignedAt"`
}
