package types

import "time"

// BirthdayLayout is the DD.MM.YYYY layout used to parse and render birthdays.
const BirthdayLayout = "02.01.2006"

const phoneLength = 10

// Field is a typed value owned by a Record that renders to a display string.
type Field interface {
	String() string
}

var (
	_ Field = Name{}
	_ Field = Phone{}
	_ Field = Birthday{}
)

// Name is a contact name. Any string is accepted.
type Name struct {
	value string
}

// NewName wraps value verbatim.
func NewName(value string) Name {
	return Name{value: value}
}

// Value returns the stored name.
func (n Name) Value() string { return n.value }

func (n Name) String() string { return n.value }

// Phone is a phone number of exactly ten decimal digits.
type Phone struct {
	value string
}

// NewPhone validates value and returns the Phone.
// Returns ErrInvalidPhone unless value is exactly ten ASCII digits.
func NewPhone(value string) (Phone, error) {
	if !isPhone(value) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: value}, nil
}

func isPhone(value string) bool {
	if len(value) != phoneLength {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// Value returns the stored digits.
func (p Phone) Value() string { return p.value }

func (p Phone) String() string { return p.value }

// Birthday is a calendar date at midnight UTC.
type Birthday struct {
	date time.Time
}

// NewBirthday parses value as DD.MM.YYYY.
// Returns ErrInvalidBirthday if the string does not match the layout or does
// not denote a real calendar date (e.g. 31.02.2020).
func NewBirthday(value string) (Birthday, error) {
	date, err := time.Parse(BirthdayLayout, value)
	if err != nil {
		return Birthday{}, ErrInvalidBirthday
	}
	return Birthday{date: date}, nil
}

// Date returns the parsed date.
func (b Birthday) Date() time.Time { return b.date }

// String renders the birthday back as DD.MM.YYYY.
func (b Birthday) String() string { return b.date.Format(BirthdayLayout) }
