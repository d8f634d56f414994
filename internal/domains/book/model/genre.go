package model

import "fmt"

// Genre is a literary category. The numeric code is what gets stored
// and sent over the wire, so existing codes must never be renumbered.
type Genre int

const (
	GenreAction Genre = iota
	GenreAdventure
	GenreAnthology
	GenreClassic
	GenreComicAndGraphicNovel
	GenreCrimeAndDetective
	GenreDrama
	GenreFable
	GenreFairyTale
	GenreFantasy
	GenreHorror
	GenreHumor
	GenreLegend
	GenreMagicalRealism
	GenreMystery
	GenreMythology
	GenreFanFiction
	GenreHistoricalFiction
	GenreRealisticFiction
	GenreScienceFiction
	GenreRomance
	GenreSatire
	GenreSciFi
	GenreShortStory
	GenreSuspense
	GenreThriller
	GenreBiography
	GenreAutobiography
	GenreEssay
	GenreMemoir
	GenreNarrativeNonFiction
	GenrePeriodicals
	GenreReferenceBooks
	GenreSelfHelpBook
	GenreSpeech
	GenreTextbook
	GenrePoetry
)

var genreDescriptions = [...]string{
	GenreAction:               "Action",
	GenreAdventure:            "Adventure",
	GenreAnthology:            "Anthology",
	GenreClassic:              "Classic",
	GenreComicAndGraphicNovel: "Comic and Graphic Novel",
	GenreCrimeAndDetective:    "Crime and Detective",
	GenreDrama:                "Drama",
	GenreFable:                "Fable",
	GenreFairyTale:            "Fairy Tale",
	GenreFantasy:              "Fantasy",
	GenreHorror:               "Horror",
	GenreHumor:                "Humor",
	GenreLegend:               "Legend",
	GenreMagicalRealism:       "Magical Realism",
	GenreMystery:              "Mystery",
	GenreMythology:            "Mythology",
	GenreFanFiction:           "Fan Fiction",
	GenreHistoricalFiction:    "Historical Fiction",
	GenreRealisticFiction:     "Realistic Fiction",
	GenreScienceFiction:       "Science Fiction",
	GenreRomance:              "Romance",
	GenreSatire:               "Satire",
	GenreSciFi:                "Sci-Fi",
	GenreShortStory:           "Short Story",
	GenreSuspense:             "Suspense",
	GenreThriller:             "Thriller",
	GenreBiography:            "Biography",
	GenreAutobiography:        "Autobiography",
	GenreEssay:                "Essay",
	GenreMemoir:               "Memoir",
	GenreNarrativeNonFiction:  "Narrative Non-Fiction",
	GenrePeriodicals:          "Periodicals",
	GenreReferenceBooks:       "Reference Books",
	GenreSelfHelpBook:         "Self-Help Book",
	GenreSpeech:               "Speech",
	GenreTextbook:             "Textbook",
	GenrePoetry:               "Poetry",
}

func (g Genre) IsValid() bool {
	return g >= GenreAction && int(g) < len(genreDescriptions)
}

// Validate is picked up by ozzo-validation for nested fields
func (g Genre) Validate() error {
	if !g.IsValid() {
		return fmt.Errorf("unknown genre code %d", int(g))
	}
	return nil
}

func (g Genre) String() string {
	if !g.IsValid() {
		return fmt.Sprintf("Genre(%d)", int(g))
	}
	return genreDescriptions[g]
}

// ParseGenre resolves a numeric code
func ParseGenre(code int) (Genre, error) {
	g := Genre(code)
	if err := g.Validate(); err != nil {
		return 0, err
	}
	return g, nil
}

// Genres lists every genre in code order
func Genres() []Genre {
	out := make([]Genre, len(genreDescriptions))
	for i := range genreDescriptions {
		out[i] = Genre(i)
	}
	return out
}
