package types

import "strings"

// absentBirthday is rendered by Record.String when no birthday is set.
const absentBirthday = "none"

// Record is one contact: a name, zero or more phones, and an optional
// birthday. The name is fixed at construction.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday // nil when absent
}

// NewRecord creates a contact with no phones and no birthday.
func NewRecord(name string) *Record {
	return &Record{name: NewName(name)}
}

// NewRecordWithBirthday creates a contact with the given birthday.
// Returns ErrInvalidBirthday if birthday is not a valid DD.MM.YYYY date.
func NewRecordWithBirthday(name, birthday string) (*Record, error) {
	b, err := NewBirthday(birthday)
	if err != nil {
		return nil, err
	}
	return &Record{name: NewName(name), birthday: &b}, nil
}

// Name returns the contact name.
func (r *Record) Name() string {
	return r.name.Value()
}

// Phones returns a copy of the phone values in insertion order.
// Returns an empty slice (not nil) if the contact has no phones.
func (r *Record) Phones() []string {
	out := make([]string, len(r.phones))
	for i, p := range r.phones {
		out[i] = p.Value()
	}
	return out
}

// AddPhone validates phone and appends it. Duplicates are kept.
// Returns ErrInvalidPhone and leaves the record unchanged on failure.
func (r *Record) AddPhone(phone string) error {
	p, err := NewPhone(phone)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// DeletePhones removes every phone.
func (r *Record) DeletePhones() {
	r.phones = nil
}

// DeletePhone removes every phone equal to value. A value that is not present
// is a no-op.
func (r *Record) DeletePhone(value string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.Value() != value {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone removes every phone equal to oldValue and appends newValue once.
// If oldValue occurs several times the list shrinks; this is not a one-to-one
// replace. newValue is validated first, so an invalid value leaves the record
// untouched.
func (r *Record) EditPhone(oldValue, newValue string) error {
	p, err := NewPhone(newValue)
	if err != nil {
		return err
	}
	r.DeletePhone(oldValue)
	r.phones = append(r.phones, p)
	return nil
}

// FindPhone reports whether a phone equal to value exists.
func (r *Record) FindPhone(value string) (string, bool) {
	for _, p := range r.phones {
		if p.Value() == value {
			return p.Value(), true
		}
	}
	return "", false
}

// AddBirthday sets or replaces the birthday.
// Returns ErrInvalidBirthday and keeps the previous birthday on failure.
func (r *Record) AddBirthday(birthday string) error {
	b, err := NewBirthday(birthday)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// HasBirthday reports whether a birthday is set.
func (r *Record) HasBirthday() bool {
	return r.birthday != nil
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// DescribePhones renders "phones: p1; p2". An empty list renders "phones: ".
func (r *Record) DescribePhones() string {
	return "phones: " + r.joinPhones()
}

// String renders the contact summary: name, birthday and phones.
func (r *Record) String() string {
	birthday := absentBirthday
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	return "Contact name: " + r.name.String() + ", birthday: " + birthday + " phones: " + r.joinPhones()
}

func (r *Record) joinPhones() string {
	parts := make([]string, len(r.phones))
	for i, p := range r.phones {
		parts[i] = p.String()
	}
	return strings.Join(parts, "; ")
}
