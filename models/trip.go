package models

import "time"

type Trip struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" binding:"required"`
	Code        string    `json:"code"` // 6-character join code
	CreatedBy   string    `json:"created_by"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	IsOwner     bool      `json:"is_owner"`
	MemberCount int       `json:"member_count,omitempty"`
}

type TripMember struct {
	ID          string    `json:"id"`
	TripID      string    `json:"trip_id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}

type SubGroup struct {
	ID        string           `json:"id"`
	TripID    string           `json:"trip_id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"created_at"`
	Members   []SubGroupMember `json:"members"`
}

type SubGroupMember struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

type TripDetail struct {
	Trip          Trip         `json:"trip"`
	Members       []TripMember `json:"members"`
	SubGroups     []SubGroup   `json:"sub_groups"`
	CurrentUserID string       `json:"current_user_id"`
}

type CreateTripRequest struct {
	Name string `json:"name" binding:"required,min=3"`
}

type JoinTripRequest struct {
	Code       string `json:"code" binding:"required,len=6"`
	SubGroupID string `json:"sub_group_id"`
}

// JoinTripResponse carries the sub-group selection round trip: when the trip
// has sub-groups and none was chosen, the caller is asked to pick one.
type JoinTripResponse struct {
	Success                   bool       `json:"success"`
	TripID                    string     `json:"trip_id"`
	RequiresSubGroupSelection bool       `json:"requires_sub_group_selection,omitempty"`
	SubGroups                 []SubGroup `json:"sub_groups,omitempty"`
}

type CreateSubGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

type RemoveMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}
