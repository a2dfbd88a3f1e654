// Package types defines the contact entities (Name, Phone, Birthday, Record,
// Directory), the storage Config, and the standard errors for the phonebook.
//
// Fields validate on construction: once a Phone or Birthday value exists it is
// well-formed. A Directory only hands out Records built from such fields.
package types
