package domain

type Action string

const (
	ActionCreate   Action = "create"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionStart    Action = "start"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionExtend   Action = "extend"
)

var transitions = map[ReservationStatus]map[Action]ReservationStatus{
	ReservationPending: {
		ActionApprove: ReservationConfirmed,
		ActionReject:  ReservationRejected,
	},
	ReservationConfirmed: {
		ActionStart:    ReservationActive,
		ActionCancel:   ReservationCancelled,
		ActionComplete: ReservationCompleted,
		ActionExtend:   ReservationConfirmed,
	},
	ReservationActive: {
		ActionCancel:   ReservationCancelled,
		ActionComplete: ReservationCompleted,
		ActionExtend:   ReservationActive,
	},
}

// NextStatus is the single place where reservation transitions are decided.
func NextStatus(from ReservationStatus, action Action) (ReservationStatus, error) {
	to, ok := transitions[from][action]
	if !ok {
		return "", &TransitionError{From: from, Action: action}
	}
	return to, nil
}

func CanApply(from ReservationStatus, action Action) bool {
	_, err := NextStatus(from, action)
	return err == nil
}
