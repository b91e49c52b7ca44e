package domain

import "time"

// ActorRole identifies who is acting on a booking.
type ActorRole string

const (
	RolePilgrim  ActorRole = "pilgrim"
	RoleOperator ActorRole = "operator"
)

// CancellationNotice is the minimum time before slot start at which an
// unprivileged actor may still cancel or modify a booking.
const CancellationNotice = 2 * time.Hour

// CanCancel decides whether a cancellation or modification is permitted.
// Operators may cancel at any time. Pilgrims may cancel only while strictly
// more than CancellationNotice remains before the slot start; exactly at
// the boundary the cancellation is denied.
func CanCancel(role ActorRole, slotStart, now time.Time) bool {
	if role == RoleOperator {
		return true
	}
	return slotStart.Sub(now) > CancellationNotice
}
