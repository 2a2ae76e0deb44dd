package domain

// Person is a cast or crew member. Embedded copies inside Film carry only
// the uuid and the full name.
type Person struct {
	UUID     string `json:"uuid"`
	FullName string `json:"full_name"`
}

// FilmRole links a person to one film with the ordered set of roles they had
// in it (actor, writer, director).
type FilmRole struct {
	UUID  string   `json:"uuid"`
	Roles []string `json:"roles"`
}

// PersonDetail is the full person record stored in the persons index: the
// person plus their film participations.
type PersonDetail struct {
	Person
	Films []FilmRole `json:"films"`
}
