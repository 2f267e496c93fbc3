package domain

import "time"

type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

// transitions is the whole booking state machine. APPROVED and REJECTED are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusWaiting:  {BookingStatusApproved, BookingStatusRejected},
	BookingStatusApproved: {},
	BookingStatusRejected: {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// ApprovalStatus maps an owner's decision to the status it produces.
func ApprovalStatus(approve bool) BookingStatus {
	if approve {
		return BookingStatusApproved
	}
	return BookingStatusRejected
}

type Booking struct {
	ID     int64
	Start  time.Time
	End    time.Time
	Item   Item
	Booker User
	Status BookingStatus
}

// VisibleTo reports whether the user is the booker or the owner of the booked item.
func (b *Booking) VisibleTo(userID int64) bool {
	return b.Booker.ID == userID || b.Item.OwnerID == userID
}
