package booking

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

var (
	ErrInvalidContact       = errors.New("contact name, email and phone are required")
	ErrInvalidEmail         = errors.New("invalid contact email")
	ErrInvalidPhone         = errors.New("invalid contact phone")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNegativeMoney        = errors.New("money cannot be negative")
)

// Money is an amount in minor currency units.
type Money struct {
	amount int64
}

func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{amount: amount}, nil
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Times(n int) Money {
	return Money{amount: m.amount * int64(n)}
}

type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCash         PaymentMethod = "cash"
	PaymentEWallet      PaymentMethod = "e_wallet"
)

func NewPaymentMethod(s string) (PaymentMethod, error) {
	pm := PaymentMethod(strings.TrimSpace(s))
	switch pm {
	case PaymentBankTransfer, PaymentCash, PaymentEWallet:
		return pm, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

func (p PaymentMethod) String() string {
	return string(p)
}

// Contact is how an anonymous requester is reached and later matched to an account.
type Contact struct {
	name  string
	email string
	phone string
}

func NewContact(name, email, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" {
		return Contact{}, ErrInvalidContact
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Contact{}, ErrInvalidEmail
	}
	if len(NormalizePhone(phone)) < 6 {
		return Contact{}, ErrInvalidPhone
	}
	return Contact{name: name, email: email, phone: phone}, nil
}

func ReconstructContact(name, email, phone string) Contact {
	return Contact{name: name, email: email, phone: phone}
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Email() string { return c.email }
func (c Contact) Phone() string { return c.phone }

// NormalizeEmail is the form used when matching bookings to accounts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps digits only, so "+62 812-3456" and "62812 3456" match.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
