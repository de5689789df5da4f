package booking

import (
	"fmt"
	"time"
)

// The bookable grid is fixed: 09:00 to 18:00 in half-hour steps.
const (
	OpeningHour  = 9
	ClosingHour  = 18
	SlotInterval = 30 * time.Minute

	ReasonFullyBooked = "fully booked"
)

// SlotKey identifies the unit the one-active-booking rule applies to.
type SlotKey struct {
	BranchID uint
	StaffID  *uint
	Date     string
	Time     string
}

func (k SlotKey) String() string {
	staff := uint(0)
	if k.StaffID != nil {
		staff = *k.StaffID
	}
	return fmt.Sprintf("%d:%d:%s:%s", k.BranchID, staff, k.Date, k.Time)
}

// BranchWide drops the stylist. Bookings with and without a stylist at the
// same branch and time contend for this key.
func (k SlotKey) BranchWide() SlotKey {
	k.StaffID = nil
	return k
}

type SlotStaff struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Slot struct {
	Time      string      `json:"time"`
	Available bool        `json:"available"`
	Staff     []SlotStaff `json:"staff"`
	Reason    string      `json:"reason,omitempty"`
}

// Grid returns the slot start times of a day as HH:MM.
func Grid() []string {
	day := time.Date(2000, 1, 1, OpeningHour, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, ClosingHour, 0, 0, 0, time.UTC)

	var out []string
	for cur := day; cur.Before(end); cur = cur.Add(SlotInterval) {
		out = append(out, cur.Format("15:04"))
	}
	return out
}
