package domain

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentWave         PaymentMethod = "wave"
	PaymentOrangeMoney  PaymentMethod = "orange_money"
	PaymentMTNMomo      PaymentMethod = "mtn_momo"
	PaymentMoovMoney    PaymentMethod = "moov_money"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheck        PaymentMethod = "check"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentWave, PaymentOrangeMoney, PaymentMTNMomo,
		PaymentMoovMoney, PaymentCard, PaymentBankTransfer, PaymentCheck:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}
