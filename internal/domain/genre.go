package domain

// Genre is a film genre. Embedded copies inside Film carry only the uuid and
// the display name, never a back-reference to films.
type Genre struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}
