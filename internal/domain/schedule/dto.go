package schedule

import (
	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

// GuestRequest carries the booked customer's contact fields
type GuestRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=200"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	Observations string `json:"observations" validate:"omitempty,max=2000"`
}

// BookingRequest represents the booking form submission. The end time is
// never submitted: it is derived from the start time and the computed total
// duration.
type BookingRequest struct {
	StaffID         int64        `json:"staff_id" validate:"required,gt=0"`
	Date            string       `json:"date" validate:"required,datetime=2006-01-02"`
	Start           string       `json:"start" validate:"required,hhmm"`
	CategoryID      int64        `json:"category_id" validate:"required,gt=0"`
	ServiceID       int64        `json:"service_id" validate:"required,gt=0"`
	ExtraServiceIDs []int64      `json:"extra_service_ids" validate:"omitempty,dive,gt=0"`
	Guest           GuestRequest `json:"guest"`
}

// BookingInput is the parsed form handed to the coordinator. ID 0 is the
// "new booking" sentinel; any other value targets an existing record.
type BookingInput struct {
	ID              int64
	StaffID         int64
	Date            timegrid.Date
	Start           timegrid.TimeOfDay
	CategoryID      int64
	ServiceID       int64
	ExtraServiceIDs []int64
	Guest           Guest
}

func (req *BookingRequest) toInput(id int64) BookingInput {
	return BookingInput{
		ID:              id,
		StaffID:         req.StaffID,
		Date:            timegrid.MustParseDate(req.Date),
		Start:           timegrid.MustParse(req.Start),
		CategoryID:      req.CategoryID,
		ServiceID:       req.ServiceID,
		ExtraServiceIDs: req.ExtraServiceIDs,
		Guest: Guest{
			Name:         req.Guest.Name,
			Email:        req.Guest.Email,
			Phone:        req.Guest.Phone,
			Observations: req.Guest.Observations,
		},
	}
}

// BreakRequest represents the break form submission. Breaks carry a free-text
// reason instead of a service; duration comes straight from the range.
type BreakRequest struct {
	StaffID int64  `json:"staff_id" validate:"required,gt=0"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Start   string `json:"start" validate:"required,hhmm"`
	End     string `json:"end" validate:"required,hhmm"`
	Reason  string `json:"reason" validate:"required,min=2,max=500"`
}

// BreakInput is the parsed break form
type BreakInput struct {
	ID      int64
	StaffID int64
	Date    timegrid.Date
	Start   timegrid.TimeOfDay
	End     timegrid.TimeOfDay
	Reason  string
}

func (req *BreakRequest) toInput(id int64) BreakInput {
	return BreakInput{
		ID:      id,
		StaffID: req.StaffID,
		Date:    timegrid.MustParseDate(req.Date),
		Start:   timegrid.MustParse(req.Start),
		End:     timegrid.MustParse(req.End),
		Reason:  req.Reason,
	}
}

// WorkdayRequest represents the workday form submission
type WorkdayRequest struct {
	StaffID int64  `json:"staff_id" validate:"required,gt=0"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Start   string `json:"start" validate:"required,hhmm"`
	End     string `json:"end" validate:"required,hhmm"`
}

// WorkdayInput is the parsed workday form
type WorkdayInput struct {
	ID      int64
	StaffID int64
	Date    timegrid.Date
	Start   timegrid.TimeOfDay
	End     timegrid.TimeOfDay
}

func (req *WorkdayRequest) toInput(id int64) WorkdayInput {
	return WorkdayInput{
		ID:      id,
		StaffID: req.StaffID,
		Date:    timegrid.MustParseDate(req.Date),
		Start:   timegrid.MustParse(req.Start),
		End:     timegrid.MustParse(req.End),
	}
}

// ProposalRequest is sent whenever the user edits either endpoint of a
// proposed range; the response carries the coupled range plus advisory
// warnings.
type ProposalRequest struct {
	PrevStart       string  `json:"prev_start" validate:"required,hhmm"`
	PrevEnd         string  `json:"prev_end" validate:"required,hhmm"`
	Start           string  `json:"start" validate:"required,hhmm"`
	End             string  `json:"end" validate:"required,hhmm"`
	ServiceID       int64   `json:"service_id" validate:"omitempty,gt=0"`
	ExtraServiceIDs []int64 `json:"extra_service_ids" validate:"omitempty,dive,gt=0"`
}

// ProposalResponse is the adjusted, consistent range
type ProposalResponse struct {
	Start           timegrid.TimeOfDay `json:"start"`
	End             timegrid.TimeOfDay `json:"end"`
	DurationMinutes int                `json:"duration_minutes"`
	Assessment      Assessment         `json:"assessment"`
}

// WorkdayResponse pairs a saved workday with its advisory assessment
type WorkdayResponse struct {
	Workday    *Workday   `json:"workday"`
	Assessment Assessment `json:"assessment"`
}

// EntryResponse pairs a saved entry with its advisory assessment
type EntryResponse struct {
	Entry      *Entry     `json:"entry"`
	Assessment Assessment `json:"assessment"`
}
