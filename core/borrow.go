package core

import (
	"loans/pkg/fixed"
)

// BorrowSnapshot principal of a borrower tagged with the borrow index of the last change
type BorrowSnapshot struct {
	Principal   fixed.Balance `json:"principal" msgpack:"principal"`
	BorrowIndex fixed.Rate    `json:"borrow_index" msgpack:"borrow_index"`
}

// IsZero no debt
func (b *BorrowSnapshot) IsZero() bool {
	return b == nil || b.Principal.IsZero()
}
