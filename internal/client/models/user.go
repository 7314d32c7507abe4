// Package models defines the wire and domain types the promptmart client
// exchanges with the marketplace backend.
package models

// Plan names as stored by the backend.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// User is the authenticated identity record. It is owned by the session
// store: created from a login/signup response or the identity probe,
// destroyed on logout or invalid-token detection.
type User struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Avatar   string     `json:"avatar,omitempty"`
	JoinedAt *Timestamp `json:"joinedAt,omitempty"`
	Plan     string     `json:"plan"`
}

// OnPaidPlan reports whether the user's plan unlocks premium-gated actions.
func (u *User) OnPaidPlan() bool {
	return u != nil && (u.Plan == PlanPro || u.Plan == PlanEnterprise)
}
