package credits

import "errors"

var (
	// ErrOutstandingRefund means the booking already has an undecided refund request
	ErrOutstandingRefund = errors.New("booking already has an outstanding refund request")

	// ErrRefundNotFound means no refund transaction matches the id
	ErrRefundNotFound = errors.New("refund transaction not found")

	// ErrAlreadyDecided means the refund request has already been approved or rejected
	ErrAlreadyDecided = errors.New("refund request already decided")

	// ErrCreditNotFound means no store credit matches the id
	ErrCreditNotFound = errors.New("store credit not found")

	// ErrCreditNotSpendable means the credit is used, expired, or past its deadline
	ErrCreditNotSpendable = errors.New("store credit is not spendable")

	// ErrInsufficientCredit means the draw exceeds the remaining balance
	ErrInsufficientCredit = errors.New("insufficient credit balance")
)
