package order

// SimpleStatus is the order status visible to non-reviewer roles.
// It is always derived from the review axis, never set independently.
type SimpleStatus string

const (
	SimpleStatusPending    SimpleStatus = "pending"
	SimpleStatusProcessing SimpleStatus = "processing"
	SimpleStatusConfirmed  SimpleStatus = "confirmed"
	SimpleStatusCancelled  SimpleStatus = "cancelled"
)

// IsValid checks if the status is a valid SimpleStatus
func (s SimpleStatus) IsValid() bool {
	switch s {
	case SimpleStatusPending, SimpleStatusProcessing, SimpleStatusConfirmed, SimpleStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SimpleStatus
func (s SimpleStatus) String() string {
	return string(s)
}

// ReviewStatus is the authoritative workflow status driven by accountant
// review decisions
type ReviewStatus string

const (
	ReviewStatusPending     ReviewStatus = "PENDING_REVIEW"
	ReviewStatusUnderReview ReviewStatus = "UNDER_REVIEW"
	ReviewStatusApproved    ReviewStatus = "APPROVED"
	ReviewStatusRejected    ReviewStatus = "REJECTED"
	ReviewStatusCancelled   ReviewStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ReviewStatus
func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusUnderReview, ReviewStatusApproved, ReviewStatusRejected, ReviewStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReviewStatus
func (s ReviewStatus) String() string {
	return string(s)
}

// IsTerminal returns true for APPROVED, REJECTED and CANCELLED
func (s ReviewStatus) IsTerminal() bool {
	switch s {
	case ReviewStatusApproved, ReviewStatusRejected, ReviewStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the review axis can advance to the target status
func (s ReviewStatus) CanTransitionTo(target ReviewStatus) bool {
	switch s {
	case ReviewStatusPending:
		return target == ReviewStatusUnderReview || target == ReviewStatusCancelled
	case ReviewStatusUnderReview:
		return target == ReviewStatusApproved || target == ReviewStatusRejected || target == ReviewStatusCancelled
	case ReviewStatusApproved, ReviewStatusRejected, ReviewStatusCancelled:
		return false // Terminal states
	}
	return false
}

// SimpleStatus projects the review axis onto the status visible to
// non-reviewer roles. The projection is a pure function and idempotent.
func (s ReviewStatus) SimpleStatus() SimpleStatus {
	switch s {
	case ReviewStatusUnderReview:
		return SimpleStatusProcessing
	case ReviewStatusApproved:
		return SimpleStatusConfirmed
	case ReviewStatusRejected, ReviewStatusCancelled:
		return SimpleStatusCancelled
	default:
		return SimpleStatusPending
	}
}

// PaymentMethod is how the customer pays for an order
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCredit   PaymentMethod = "credit"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCredit:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid
}
