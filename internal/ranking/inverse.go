package ranking

// inverseStats are the stats where a lower value is better.
var inverseStats = map[string]struct{}{
	"Dist/90":      {},
	"Poss Lost/90": {},
	"Tcon/90":      {},
	"Mins/Gl":      {},
	"Last Gl":      {},
	"Off":          {},
	"FA":           {},
	"Fls":          {},
	"Yel":          {},
	"Red":          {},
	"Conc":         {},
	"All/90":       {},
	"Last C":       {},
}

// IsInverse reports whether a lower value of stat indicates a better player.
func IsInverse(stat string) bool {
	_, ok := inverseStats[stat]
	return ok
}
