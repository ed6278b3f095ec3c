package request

import (
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"
)

type ListBookingsQuery struct {
	From  string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To    string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (q ListBookingsQuery) ToFilter() queries.ListFilter {
	f := queries.ListFilter{From: q.From, To: q.To, Limit: q.Limit}
	if q.After != "" {
		f.After = &queries.Cursor{After: q.After}
	}
	return f
}

type AdminRescheduleRequest struct {
	NewDate     string `json:"newDate" binding:"omitempty,datetime=2006-01-02"`
	NewTimeSlot string `json:"newTimeSlot" binding:"required"`
	Notes       string `json:"notes" binding:"max=1000"`
}

func (r AdminRescheduleRequest) ToInput() commands.RescheduleInput {
	return commands.RescheduleInput{
		NewDate:     r.NewDate,
		NewTimeSlot: r.NewTimeSlot,
		Notes:       r.Notes,
	}
}

type AdminCancelRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ManageAccessRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}
