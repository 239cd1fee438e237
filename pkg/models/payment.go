package models

// PaymentStatus represents payment status as recorded by the payment provider
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusError   PaymentStatus = "error"
)

// IsFailure reports whether the payment counts toward failure-rate and fraud signals.
func (s PaymentStatus) IsFailure() bool {
	return s == PaymentStatusFailed || s == PaymentStatusError
}

// PaymentStatuses lists every status the provider reports
var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusSuccess,
	PaymentStatusFailed,
	PaymentStatusError,
}

// FailedPaymentStatuses lists the statuses treated as failed attempts.
var FailedPaymentStatuses = failedPaymentStatuses()

func failedPaymentStatuses() []string {
	statuses := make([]string, 0, 2)
	for _, s := range PaymentStatuses {
		if s.IsFailure() {
			statuses = append(statuses, string(s))
		}
	}
	return statuses
}
