package reporting

import (
	"strings"

	"github.com/delpresence/backend/internal/examcal/models"
)

func joinGroupNames(names []string) string {
	return strings.Join(names, ", ")
}

func conflictLabel(conflict bool) string {
	if conflict {
		return "Yes"
	}
	return "No"
}

func statusLabel(s models.RequestStatus) string {
	switch s {
	case models.StatusPending:
		return "Pending"
	case models.StatusApproved:
		return "Approved"
	case models.StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}
