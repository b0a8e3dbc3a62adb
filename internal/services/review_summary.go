// internal/services/review_summary.go
package services

import (
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/javajoker/permit-portal/internal/permits"
)

// ReviewSummary is derived from the full record set on every read.
type ReviewSummary struct {
	Total       int            `json:"total"`
	Approved    int            `json:"approved"`
	Rejected    int            `json:"rejected"`
	PendingLike int            `json:"pendingLike"`
	ByStatus    map[string]int `json:"byStatus"`
	ByType      map[string]int `json:"byType"`
}

// SummarizeApplications counts applications by status bucket and by simplified type.
func SummarizeApplications(apps []models.Application) ReviewSummary {
	summary := ReviewSummary{
		Total:    len(apps),
		ByStatus: make(map[string]int),
		ByType:   make(map[string]int),
	}
	for _, app := range apps {
		switch app.Status {
		case models.ApplicationStatusApproved:
			summary.Approved++
		case models.ApplicationStatusRejected:
			summary.Rejected++
		default:
			summary.PendingLike++
		}
		summary.ByStatus[string(app.Status)]++
		summary.ByType[permits.SimplifyType(app.Type)]++
	}
	return summary
}
