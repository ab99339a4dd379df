package transport

import (
	"time"

	agenttransport "realty_portal_backend/internal/agents/transport"
)

// ListRequestsQuery carries the common list filters for both request kinds.
type ListRequestsQuery struct {
	Status   string `form:"status" validate:"omitempty,oneof=pending approved denied completed"`
	Q        string `form:"q" validate:"omitempty,max=200"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ApproveVisitRequest is the payload for approving a visit.
type ApproveVisitRequest struct {
	ScheduledSlot string  `json:"scheduledSlot" binding:"required"`
	AgentID       string  `json:"agentId" binding:"required,uuid"`
	AgentMsg      *string `json:"agentMsg" validate:"omitempty,max=2000"`
}

// DenyRequest is the payload for denying a pending request. The client
// message is the mandatory denial reason.
type DenyRequest struct {
	ClientMsg string  `json:"clientMsg" binding:"required"`
	AgentMsg  *string `json:"agentMsg" validate:"omitempty,max=2000"`
}

// CancelRequest is the payload for cancelling an approved request.
type CancelRequest struct {
	ClientMsg *string `json:"clientMsg" validate:"omitempty,max=2000"`
	AgentMsg  *string `json:"agentMsg" validate:"omitempty,max=2000"`
}

// VisitRequestResponse is the API representation of a visit request,
// including resolved agent snapshots and denormalized display fields.
type VisitRequestResponse struct {
	ID              string                                `json:"id"`
	ClientID        string                                `json:"clientId"`
	ClientName      string                                `json:"clientName"`
	ClientEmail     *string                               `json:"clientEmail,omitempty"`
	ClientPhone     *string                               `json:"clientPhone,omitempty"`
	PropertyID      string                                `json:"propertyId"`
	PropertyName    string                                `json:"propertyName"`
	PropertyAddress string                                `json:"propertyAddress"`
	UnitID          string                                `json:"unitId"`
	UnitIdentifier  string                                `json:"unitIdentifier"`
	UnitBlock       *string                               `json:"unitBlock,omitempty"`
	Status          string                                `json:"status"`
	RequestedSlots  []time.Time                           `json:"requestedSlots"`
	ScheduledSlot   *time.Time                            `json:"scheduledSlot,omitempty"`
	ClientMsg       *string                               `json:"clientMsg,omitempty"`
	AgentMsg        *string                               `json:"agentMsg,omitempty"`
	Agents          []agenttransport.AssignedAgentResponse `json:"agents"`
	CreatedAt       time.Time                             `json:"createdAt"`
	UpdatedAt       time.Time                             `json:"updatedAt"`
}

// ReservationRequestResponse is the API representation of a reservation
// request.
type ReservationRequestResponse struct {
	ID               string                                `json:"id"`
	ClientID         string                                `json:"clientId"`
	ClientName       string                                `json:"clientName"`
	ClientEmail      *string                               `json:"clientEmail,omitempty"`
	ClientPhone      *string                               `json:"clientPhone,omitempty"`
	PropertyID       string                                `json:"propertyId"`
	PropertyName     string                                `json:"propertyName"`
	PropertyAddress  string                                `json:"propertyAddress"`
	UnitID           string                                `json:"unitId"`
	UnitIdentifier   string                                `json:"unitIdentifier"`
	UnitBlock        *string                               `json:"unitBlock,omitempty"`
	Status           string                                `json:"status"`
	ClientMsg        *string                               `json:"clientMsg,omitempty"`
	AgentMsg         *string                               `json:"agentMsg,omitempty"`
	AddressProofURLs []string                              `json:"addressProofUrls"`
	IncomeProofURLs  []string                              `json:"incomeProofUrls"`
	IdentityDocURLs  []string                              `json:"identityDocUrls"`
	CertificateURLs  []string                              `json:"certificateUrls"`
	Agents           []agenttransport.AssignedAgentResponse `json:"agents"`
	CreatedAt        time.Time                             `json:"createdAt"`
	UpdatedAt        time.Time                             `json:"updatedAt"`
}

// VisitListResponse is a page of visit requests.
type VisitListResponse struct {
	Items      []VisitRequestResponse `json:"items"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalPages int                    `json:"totalPages"`
}

// ReservationListResponse is a page of reservation requests.
type ReservationListResponse struct {
	Items      []ReservationRequestResponse `json:"items"`
	Total      int                          `json:"total"`
	Page       int                          `json:"page"`
	PageSize   int                          `json:"pageSize"`
	TotalPages int                          `json:"totalPages"`
}
