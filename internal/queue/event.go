// Package queue defines message payloads exchanged over the message broker.
package queue

// SellerAppliedEvent is published when a seller application is filed.  It
// carries enough information for downstream consumers to send the applicant
// a confirmation notification without querying the primary database.
type SellerAppliedEvent struct {
	ApplicationID      uint64 `json:"application_id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	ExperienceTitle    string `json:"experience_title"`
	ExperienceCategory string `json:"experience_category"`
	AppliedAt          string `json:"applied_at"`
}
