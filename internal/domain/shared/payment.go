package shared

// PaymentMethod enumerates how money moved for a transaction.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentOnline   PaymentMethod = "online"
	PaymentMixed    PaymentMethod = "mixed"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCredit   PaymentMethod = "credit"
	PaymentCheque   PaymentMethod = "cheque"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentOnline, PaymentMixed, PaymentTransfer, PaymentCredit, PaymentCheque:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}
