package booking

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

type Actor string

const (
	ActorClient Actor = "client"
	ActorAdmin  Actor = "admin"
)

func (a Actor) IsValid() bool {
	return a == ActorClient || a == ActorAdmin
}

type Action string

const (
	ActionReschedule Action = "reschedule"
	ActionTransfer   Action = "transfer"
)

func (a Action) IsValid() bool {
	return a == ActionReschedule || a == ActionTransfer
}
