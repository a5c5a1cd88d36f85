package model

import "time"

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusFlagged  ReviewStatus = "flagged"
)

// ValidModerationTarget reports whether the status may be set through
// moderation. "pending" exists only as the creation default.
func (s ReviewStatus) ValidModerationTarget() bool {
	return s == ReviewStatusApproved || s == ReviewStatusFlagged
}

type Review struct {
	ID               int64        `json:"id"`
	CustomerUsername string       `json:"customer_username"`
	ProductID        int64        `json:"product_id"`
	Rating           int          `json:"rating"`
	Comment          *string      `json:"comment"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	Status           ReviewStatus `json:"status"`
}

func (Review) TableName() string { return "reviews" }

type ReviewCreateRequest struct {
	ProductID int64   `json:"product_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
}

type ReviewUpdateRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type ReviewModerateRequest struct {
	Status ReviewStatus `json:"status"`
}
