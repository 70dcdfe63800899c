package catalog

import "strings"

// Category is a normalized point classification. The set is closed; see All.
type Category string

const (
	Chests    Category = "chests"
	EChests   Category = "echests"
	Shulkers  Category = "shulkers"
	Barrels   Category = "barrels"
	Signs     Category = "signs"
	Spawners  Category = "spawners"
	Portals   Category = "portals"
	Beds      Category = "beds"
	Pigs      Category = "pigs"
	Villagers Category = "villagers"
	Unknown   Category = "unknown"
)

var all = []Category{
	Chests, EChests, Shulkers, Barrels, Signs, Spawners,
	Portals, Beds, Pigs, Villagers, Unknown,
}

// All returns the categories in display order. Unknown is always last.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	for _, k := range all {
		if k == c {
			return true
		}
	}
	return false
}

// aliases maps a bare (namespace-stripped, lower-case) label to its category.
var aliases = map[string]Category{
	"chest":            Chests,
	"chests":           Chests,
	"trapped_chest":    Chests,
	"chest_minecart":   Chests,
	"ender_chest":      EChests,
	"enderchest":       EChests,
	"echest":           EChests,
	"echests":          EChests,
	"shulker_box":      Shulkers,
	"shulker":          Shulkers,
	"shulkers":         Shulkers,
	"barrel":           Barrels,
	"barrels":          Barrels,
	"sign":             Signs,
	"signs":            Signs,
	"spawner":          Spawners,
	"mob_spawner":      Spawners,
	"spawners":         Spawners,
	"nether_portal":    Portals,
	"end_portal":       Portals,
	"end_gateway":      Portals,
	"portal":           Portals,
	"portals":          Portals,
	"bed":              Beds,
	"beds":             Beds,
	"pig":              Pigs,
	"pigs":             Pigs,
	"villager":         Villagers,
	"villagers":        Villagers,
	"wandering_trader": Villagers,
}

// suffixes catch colored and wood variants such as red_shulker_box or
// oak_wall_hanging_sign.
var suffixes = []struct {
	suffix string
	cat    Category
}{
	{"_shulker_box", Shulkers},
	{"_sign", Signs},
	{"_bed", Beds},
}

// Normalize maps a raw source label to its category. Unrecognized labels
// map to Unknown.
func Normalize(label string) Category {
	s := strings.ToLower(strings.TrimSpace(label))
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.ReplaceAll(s, " ", "_")
	if c, ok := aliases[s]; ok {
		return c
	}
	for _, sf := range suffixes {
		if strings.HasSuffix(s, sf.suffix) {
			return sf.cat
		}
	}
	return Unknown
}
