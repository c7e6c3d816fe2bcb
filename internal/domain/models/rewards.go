// internal/domain/models/rewards.go
package models

import "time"

// Gadget is a reward item students can spend points on.
type Gadget struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name" json:"name"`
	NameCI      string `bson:"name_ci" json:"name_ci"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	Cost        int    `bson:"cost" json:"cost"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Contest is a time-bounded competition whose prize is a gadget. When saved
// without an explicit banner, the banner inherits the linked gadget's image
// at save time (not at read time).
type Contest struct {
	ID             string `bson:"_id,omitempty" json:"id"`
	Title          string `bson:"title" json:"title"`
	TitleCI        string `bson:"title_ci" json:"title_ci"`
	Description    string `bson:"description,omitempty" json:"description,omitempty"`
	Banner         string `bson:"banner,omitempty" json:"banner,omitempty"`
	RewardGadgetID string `bson:"reward_gadget_id,omitempty" json:"reward_gadget_id,omitempty"`

	StartsAt *time.Time `bson:"starts_at,omitempty" json:"starts_at,omitempty"`
	EndsAt   *time.Time `bson:"ends_at,omitempty" json:"ends_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Purchase request statuses.
const (
	PurchasePending  = "pending"
	PurchaseApproved = "approved"
	PurchaseRejected = "rejected"
)

// PurchaseRequest is a student's request to redeem a gadget. Deciding one is
// a single-document status update; there is no stock or currency
// compensation here.
type PurchaseRequest struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	StudentID string `bson:"student_id" json:"student_id"`
	GadgetID  string `bson:"gadget_id" json:"gadget_id"`
	Status    string `bson:"status" json:"status"`

	DecidedBy string     `bson:"decided_by,omitempty" json:"decided_by,omitempty"`
	DecidedAt *time.Time `bson:"decided_at,omitempty" json:"decided_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
