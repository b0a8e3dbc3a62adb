// internal/models/application.go
package models

import (
	"strings"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending    ApplicationStatus = "Pending"
	ApplicationStatusProcessing ApplicationStatus = "Processing"
	ApplicationStatusApproved   ApplicationStatus = "Approved"
	ApplicationStatusRejected   ApplicationStatus = "Rejected"
)

// Approved and Rejected have no outgoing edges.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending: {
		ApplicationStatusProcessing,
		ApplicationStatusApproved,
		ApplicationStatusRejected,
	},
	ApplicationStatusProcessing: {
		ApplicationStatusApproved,
		ApplicationStatusRejected,
	},
}

// ParseApplicationStatus accepts any casing of a known status name.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	for _, status := range AllApplicationStatuses() {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, true
		}
	}
	return "", false
}

func AllApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationStatusPending,
		ApplicationStatusProcessing,
		ApplicationStatusApproved,
		ApplicationStatusRejected,
	}
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusProcessing,
		ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// IsPendingLike reports whether the status still awaits a decision.
func (s ApplicationStatus) IsPendingLike() bool {
	return !s.IsTerminal()
}

func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	for _, next := range applicationTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Application is a single permit request. Only Status changes after creation.
type Application struct {
	ID            string            `json:"id" gorm:"type:varchar(36);primaryKey"`
	Type          string            `json:"type" gorm:"size:150;not null;index"`
	ApplicantName string            `json:"applicantName" gorm:"size:255;not null"`
	UserID        string            `json:"userId" gorm:"size:128;index"`
	Status        ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	Date          time.Time         `json:"date" gorm:"not null;index"`
	Data          JSONB             `json:"data" gorm:"type:jsonb"`
}

func (Application) TableName() string {
	return "applications"
}
