package outofrange

type SubmitRequest struct {
	RequestType                string  `json:"request_type" binding:"required,oneof=clock_in clock_out"`
	Reason                     string  `json:"reason" binding:"required"`
	// No required tag: a distance of exactly 0 (on the boundary) is a legal value.
	DistanceFromGeofenceMeters float64 `json:"distance_from_geofence_meters" binding:"gte=0"`
}

type DecideRequest struct {
	Note *string `json:"note,omitempty"`
}

type RequestResponse struct {
	ID                         string  `json:"id"`
	UserID                     string  `json:"user_id"`
	OrganizationID             string  `json:"organization_id"`
	RequestType                string  `json:"request_type"`
	Reason                     string  `json:"reason"`
	DistanceFromGeofenceMeters float64 `json:"distance_from_geofence_meters"`
	Status                     string  `json:"status"`
	DecidedBy                  *string `json:"decided_by,omitempty"`
	DecidedAt                  *string `json:"decided_at,omitempty"`
	DecisionNote               *string `json:"decision_note,omitempty"`
	CreatedAt                  string  `json:"created_at"`
}
