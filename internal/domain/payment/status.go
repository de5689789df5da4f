package payment

import "github.com/BruksfildServices01/salon-booking/internal/httperr"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

const MethodVNPay = "vnpay"

var transitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusFailed},
	StatusCompleted: {StatusRefunded},
}

// Settled reports whether gateway callbacks for this payment are replays.
func (s Status) Settled() bool {
	return s == StatusCompleted || s == StatusRefunded
}

func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}
