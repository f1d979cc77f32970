package model

// Identity represents one customer account.  Optional profile fields use
// the empty string as their absent value; the API never distinguishes an
// unset field from an empty one.  Email is immutable after creation, there
// is no email-change flow.
//
// Fields:
//  ID              – unique identifier.
//  Email           – unique login email, lower-cased.
//  Nombre          – first name.
//  Apellidos       – last name(s).
//  FechaNacimiento – date of birth, stored as YYYY-MM-DD (shown as DD-MM-YYYY).
//  Comuna          – locality.
//  Instagram       – social handle.
//  Celular         – phone in +NNN-NNNNNNNN display form, 11 digits total.
//  Promociones     – marketing opt-in flag.
type Identity struct {
	ID              string
	Email           string
	Nombre          string
	Apellidos       string
	FechaNacimiento string
	Comuna          string
	Instagram       string
	Celular         string
	Promociones     bool
}
