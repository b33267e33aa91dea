package contact

import "time"

const (
	StatusNew        = "new"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

var validStatuses = map[string]struct{}{
	StatusNew:        {},
	StatusInProgress: {},
	StatusResolved:   {},
}

func IsValidStatus(value string) bool {
	_, ok := validStatuses[value]
	return ok
}

type Message struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	FirstName string    `bson:"firstName" json:"firstName"`
	LastName  string    `bson:"lastName" json:"lastName"`
	Email     string    `bson:"email" json:"email"`
	Subject   string    `bson:"subject" json:"subject"`
	Body      string    `bson:"message" json:"message"`
	Status    string    `bson:"status" json:"status"`
	IPAddress string    `bson:"ipAddress,omitempty" json:"-"`
	UserAgent string    `bson:"userAgent,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Subject   string `json:"subject" validate:"required,oneof='General Inquiry' 'Technical Support' 'Partnership Opportunity' 'Investment Information' 'Custom PCB Design'"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

type ListFilter struct {
	Status string
}
