package domain

// Film is one movie record as the indexing pipeline denormalizes it: related
// genres and persons are embedded by value, so a lookup needs no secondary
// fetch. Records are immutable from the query service's point of view.
type Film struct {
	UUID         string   `json:"uuid"`
	Title        string   `json:"title"`
	IMDBRating   *float64 `json:"imdb_rating"`
	Description  string   `json:"description,omitempty"`
	Genres       []Genre  `json:"genres,omitempty"`
	Actors       []Person `json:"actors,omitempty"`
	Writers      []Person `json:"writers,omitempty"`
	Directors    []Person `json:"directors,omitempty"`
	ActorsNames  []string `json:"actors_names,omitempty"`
	WritersNames []string `json:"writers_names,omitempty"`
}

// FilmRating is the compact film view returned for a person's filmography.
type FilmRating struct {
	UUID       string   `json:"uuid"`
	Title      string   `json:"title"`
	IMDBRating *float64 `json:"imdb_rating"`
}

// AsRating projects the film to its compact rating view.
func (f Film) AsRating() FilmRating {
	return FilmRating{UUID: f.UUID, Title: f.Title, IMDBRating: f.IMDBRating}
}

// Rating returns the film's rating for listings where unrated films sort last.
func (f FilmRating) Rating() float64 {
	if f.IMDBRating == nil {
		return 0
	}
	return *f.IMDBRating
}
