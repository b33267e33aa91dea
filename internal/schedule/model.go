package schedule

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

var validStatuses = map[string]struct{}{
	StatusPending:   {},
	StatusConfirmed: {},
	StatusCancelled: {},
	StatusCompleted: {},
}

func IsValidStatus(value string) bool {
	_, ok := validStatuses[value]
	return ok
}

// ActiveStatuses are the states that hold a slot. Must stay in sync with the
// partial unique index in internal/db.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted}

type Request struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	Phone         string    `bson:"phone" json:"phone"`
	Company       string    `bson:"company,omitempty" json:"company,omitempty"`
	ServiceType   string    `bson:"serviceType" json:"serviceType"`
	PreferredDate string    `bson:"preferredDate" json:"preferredDate"`
	PreferredTime string    `bson:"preferredTime" json:"preferredTime"`
	Message       string    `bson:"message,omitempty" json:"message,omitempty"`
	Status        string    `bson:"status" json:"status"`
	ActualDate    string    `bson:"actualDate,omitempty" json:"actualDate,omitempty"`
	ActualTime    string    `bson:"actualTime,omitempty" json:"actualTime,omitempty"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	IPAddress     string    `bson:"ipAddress,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,phone"`
	Company       string `json:"company" validate:"omitempty,max=100"`
	ServiceType   string `json:"serviceType" validate:"required"`
	PreferredDate string `json:"preferredDate" validate:"required,date"`
	PreferredTime string `json:"preferredTime" validate:"required,clock"`
	Message       string `json:"message" validate:"omitempty,max=1000"`
}

type StatusUpdateRequest struct {
	Status     string `json:"status" validate:"required"`
	ActualDate string `json:"actualDate" validate:"omitempty,date"`
	ActualTime string `json:"actualTime" validate:"omitempty,clock"`
	Notes      string `json:"notes" validate:"omitempty,max=2000"`
}

// CreatedData is the projected subset returned on a successful booking; the
// raw stored document is never sent back.
type CreatedData struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	Status        string `json:"status"`
}

type ListFilter struct {
	Status string
	Date   string
}
