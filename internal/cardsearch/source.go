package cardsearch

// Source describes one TCG franchise endpoint. A source with an empty Path is
// listed but not searchable yet ("coming soon").
type Source struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s Source) Searchable() bool { return s.Path != "" }

// Sources mirrors the franchises the storefront offers in the API-assisted
// admin form.
var Sources = []Source{
	{Name: "One Piece", Path: "/api/one-piece/cards"},
	{Name: "Pokémon", Path: "/api/pokemon/cards"},
	{Name: "Dragon Ball Fusion", Path: "/api/dragon-ball-fusion/cards"},
	{Name: "Digimon", Path: "/api/digimon/cards"},
	{Name: "Magic The Gathering", Path: "/api/magic/cards"},
	{Name: "Union Arena", Path: "/api/union-arena/cards"},
	{Name: "Gundam", Path: "/api/gundam/cards"},
	{Name: "Star Wars Unlimited", Path: "/api/star-wars-unlimited/cards"},
	{Name: "Riftbound (League Of Legends)", Path: "/api/riftbound/cards"},
	{Name: "Mitos y leyendas (Coming soon)", Path: ""},
}

// SourceByName returns the source with the given name, if any.
func SourceByName(name string) (Source, bool) {
	for _, s := range Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}
