package workflow

import "github.com/agencydesk/agencyflow/internal/models"

// Allowed content request transitions. completed and rejected are terminal.
var requestTransitions = map[string][]string{
	models.RequestStatusPending:    {models.RequestStatusInProgress, models.RequestStatusRejected},
	models.RequestStatusInProgress: {models.RequestStatusCompleted, models.RequestStatusRejected},
	models.RequestStatusCompleted:  {},
	models.RequestStatusRejected:   {},
}

func RequestTransitionAllowed(from, to string) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ClaimableRequest reports whether an agent may pick the request up.
func ClaimableRequest(status string) bool {
	return status == models.RequestStatusPending
}
