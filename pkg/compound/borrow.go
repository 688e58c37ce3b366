package compound

import (
	"loans/pkg/fixed"
)

// BorrowBalance balance = principal * borrow_index / snapshot_index
//
// a zero principal or a zero snapshot index is no debt
func BorrowBalance(principal fixed.Balance, snapshotIndex, borrowIndex fixed.Rate) (fixed.Balance, error) {
	if principal.IsZero() || snapshotIndex.IsZero() {
		return fixed.Balance{}, nil
	}

	ratio, err := borrowIndex.Div(snapshotIndex)
	if err != nil {
		return fixed.Balance{}, err
	}

	return ratio.MulInt(principal)
}
