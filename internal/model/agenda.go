package model

import "time"

// AgendaDay tracks how many confirmed reservations fall on a given date and
// whether the date is manually blocked.  Confirmation claims a slot in the
// same transaction that flips the reservation status, so the daily limit
// cannot be oversold by concurrent confirmations.
//
// Fields:
//  Date       – the calendar day.
//  Confirmed  – confirmed reservations counted against the limit.
//  DailyLimit – maximum confirmed reservations for the day.
//  Blocked    – manual block set from the back office.
type AgendaDay struct {
	Date       time.Time // daily_agenda.date
	Confirmed  int       // daily_agenda.confirmed
	DailyLimit int       // daily_agenda.daily_limit
	Blocked    bool      // daily_agenda.blocked
}
