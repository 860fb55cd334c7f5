// Package extraction turns the raw text of a venue's daily schedule into
// structured birthday-party reservations. It is pure: no I/O, no shared
// state, and it always returns a (possibly empty) list.
package extraction

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/partyops/jumpkitchen/internal/domain/models"
)

// PairingStrategy selects how package declarations are matched with child
// declarations inside one slot segment.
type PairingStrategy string

const (
	// PairByIndex pairs the j-th package with the j-th child. This mirrors
	// the documented schedule format, which lists them in lockstep.
	PairByIndex PairingStrategy = "index"
	// PairByNearest pairs each package with the first unclaimed child
	// declared at or after it, which tolerates stray child entries.
	PairByNearest PairingStrategy = "nearest"
)

// PlaceholderChildName is used when a package declaration has no paired
// child declaration.
const PlaceholderChildName = "Enfant"

// defaultChildCount applies when the captured headcount cannot be parsed.
const defaultChildCount = 10

// Options tunes the extractor. The zero value is completed by New.
type Options struct {
	// EventKeyword is the venue-specific marker that qualifies a segment as
	// a birthday booking (in addition to the always-accepted "Formule").
	EventKeyword string
	// WindowBefore/WindowAfter bound the context, in characters around a
	// package declaration, searched for options and cake types.
	WindowBefore int
	WindowAfter  int
	Pairing      PairingStrategy
	// ApplyHourExtension shifts the meal time one hour later when the paid
	// extra-hour option is detected near the booking.
	ApplyHourExtension bool
	// NewID supplies reservation identifiers; defaults to UUID-based ones.
	NewID func() string
}

var (
	packagePattern = regexp.MustCompile(`(?i)(\d{1,2})\.00\s*Formule\s*(Anniversaire\s*VIP|Morning|Night|Classique)`)
	childPattern   = regexp.MustCompile(`(?i)([A-Za-zÀ-ÿ-]+)\s+([A-Za-zÀ-ÿ-]+)\s*\([MF]\)[^)]*?(\d{1,2})\s*ans`)

	cakeChocolatePattern = regexp.MustCompile(`(?i)Moelleux.*chocolat`)
	cakeBavarianPattern  = regexp.MustCompile(`(?i)Bavarois.*Framboise`)
	cakeApplePattern     = regexp.MustCompile(`(?i)Tarte.*pommes`)
	partyBagPattern      = regexp.MustCompile(`(?i)Pochettes?\s*surprises?`)
	extraHourPattern     = regexp.MustCompile(`(?i)1h\s*Supp\s*anniv`)
)

// Extractor derives reservation records from raw schedule text.
type Extractor struct {
	opts           Options
	keywordPattern *regexp.Regexp
}

// New builds an Extractor, filling in defaults for unset options.
func New(opts Options) *Extractor {
	if opts.EventKeyword == "" {
		opts.EventKeyword = "Jump Anniv"
	}
	if opts.WindowBefore <= 0 {
		opts.WindowBefore = 100
	}
	if opts.WindowAfter <= 0 {
		opts.WindowAfter = 500
	}
	if opts.Pairing == "" {
		opts.Pairing = PairByIndex
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return "res_" + uuid.NewString() }
	}

	keyword := strings.Join(strings.Fields(regexp.QuoteMeta(opts.EventKeyword)), `\s*`)
	return &Extractor{
		opts:           opts,
		keywordPattern: regexp.MustCompile(`(?i)` + keyword),
	}
}

// Extract parses raw schedule text into an ordered, deduplicated list of
// reservations. It is total: malformed or empty input yields an empty list.
func (e *Extractor) Extract(raw string) []models.Reservation {
	text := normalizeNewlines(raw)

	records := []models.Reservation{}
	for _, seg := range e.segments(text) {
		records = append(records, e.extractSegment(seg)...)
	}

	records = dedupe(records)
	sortByMealTime(records)
	return records
}

type packageMatch struct {
	childCount int
	pkg        models.Package
	offset     int
}

type childMatch struct {
	name   string
	age    int
	offset int
}

// extractSegment assembles one record per package declaration found in the
// segment. A package declaration is mandatory; a child declaration is
// optional and falls back to a placeholder.
func (e *Extractor) extractSegment(seg segment) []models.Reservation {
	packages := findPackages(seg.body)
	children := findChildren(seg.body)

	var records []models.Reservation
	for _, pair := range e.pair(packages, children) {
		records = append(records, e.buildRecord(seg, pair.pkg, pair.child))
	}
	return records
}

type pairing struct {
	pkg   packageMatch
	child *childMatch
}

// pair aligns package declarations with child declarations. With
// PairByIndex the two lists are walked in lockstep; child entries beyond
// the package count are dropped, because a package is what makes a record.
func (e *Extractor) pair(packages []packageMatch, children []childMatch) []pairing {
	if e.opts.Pairing == PairByNearest {
		return pairNearest(packages, children)
	}

	pairs := make([]pairing, 0, len(packages))
	for j := range packages {
		p := pairing{pkg: packages[j]}
		if j < len(children) {
			p.child = &children[j]
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// pairNearest claims, for each package in order, the first unclaimed child
// declared at or after the package offset. Children declared before every
// package, or left over, are dropped.
func pairNearest(packages []packageMatch, children []childMatch) []pairing {
	claimed := make([]bool, len(children))
	pairs := make([]pairing, 0, len(packages))
	for _, pkg := range packages {
		p := pairing{pkg: pkg}
		for i := range children {
			if claimed[i] || children[i].offset < pkg.offset {
				continue
			}
			claimed[i] = true
			p.child = &children[i]
			break
		}
		pairs = append(pairs, p)
	}
	return pairs
}

func (e *Extractor) buildRecord(seg segment, pkg packageMatch, child *childMatch) models.Reservation {
	name := PlaceholderChildName
	age := 0
	if child != nil {
		name = child.name
		age = child.age
	}

	ctx := e.contextWindow(seg.body, pkg.offset)

	mealTime := ComputeMealTime(seg.start, pkg.pkg)
	if e.opts.ApplyHourExtension && extraHourPattern.MatchString(ctx) {
		mealTime = ExtendByOneHour(mealTime)
	}

	pizzas := 0
	if pkg.pkg.IncludesPizzas() {
		pizzas = PizzaBaseline(pkg.childCount)
	}

	partyBags := 0
	if partyBagPattern.MatchString(ctx) {
		partyBags = pkg.childCount
	}

	snacks := SnackBaseline(pkg.childCount)
	lowered := strings.ToLower(ctx)

	return models.Reservation{
		ID:              e.opts.NewID(),
		StartTime:       seg.start,
		MealTime:        mealTime,
		ChildName:       name,
		ChildAge:        age,
		ChildCount:      pkg.childCount,
		Package:         pkg.pkg,
		CakeType:        detectCake(ctx),
		Pizzas:          pizzas,
		PizzasExtra:     0,
		SnackCount:      snacks,
		DrinkCount:      snacks,
		PartyBagCount:   partyBags,
		QueenPizza:      strings.Contains(lowered, "reine"),
		MargheritaPizza: strings.Contains(lowered, "marguerite"),
		Champagne:       strings.Contains(lowered, "champagne"),
		FreeText:        "",
		Done:            false,
	}
}

// contextWindow clips the configured window around a package declaration to
// the segment bounds. Options and cake types are only trusted inside it.
func (e *Extractor) contextWindow(body string, offset int) string {
	from := offset - e.opts.WindowBefore
	if from < 0 {
		from = 0
	}
	to := offset + e.opts.WindowAfter
	if to > len(body) {
		to = len(body)
	}
	return body[from:to]
}

func findPackages(body string) []packageMatch {
	raw := packagePattern.FindAllStringSubmatchIndex(body, -1)
	matches := make([]packageMatch, 0, len(raw))
	for _, m := range raw {
		count, err := strconv.Atoi(body[m[2]:m[3]])
		if err != nil || count < 1 {
			count = defaultChildCount
		}
		matches = append(matches, packageMatch{
			childCount: count,
			pkg:        mapPackage(body[m[4]:m[5]]),
			offset:     m[0],
		})
	}
	return matches
}

func findChildren(body string) []childMatch {
	raw := childPattern.FindAllStringSubmatchIndex(body, -1)
	matches := make([]childMatch, 0, len(raw))
	for _, m := range raw {
		age, err := strconv.Atoi(body[m[6]:m[7]])
		if err != nil {
			age = 0
		}
		matches = append(matches, childMatch{
			name:   body[m[2]:m[3]] + " " + body[m[4]:m[5]],
			age:    age,
			offset: m[0],
		})
	}
	return matches
}

func mapPackage(label string) models.Package {
	lowered := strings.ToLower(label)
	switch {
	case strings.Contains(lowered, "vip"):
		return models.PackageVIP
	case strings.Contains(lowered, "morning"), strings.Contains(lowered, "night"):
		return models.PackageMorningNight
	default:
		return models.PackageClassic
	}
}

func detectCake(ctx string) models.CakeType {
	switch {
	case cakeChocolatePattern.MatchString(ctx):
		return models.CakeChocolateSoft
	case cakeBavarianPattern.MatchString(ctx):
		return models.CakeRaspberryBavarian
	case cakeApplePattern.MatchString(ctx):
		return models.CakeAppleTart
	default:
		return models.CakeNone
	}
}

// dedupe keeps the first record for each (start time, child name, child
// count) key; later duplicates come from the same booking appearing twice
// in the source document.
func dedupe(records []models.Reservation) []models.Reservation {
	seen := make(map[string]struct{}, len(records))
	unique := records[:0]
	for _, r := range records {
		key := fmt.Sprintf("%s|%s|%d", r.StartTime, r.ChildName, r.ChildCount)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}

// sortByMealTime orders records by their "HH:MM" meal time. Plain string
// comparison is correct because the format is fixed-width zero-padded.
func sortByMealTime(records []models.Reservation) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].MealTime < records[j].MealTime
	})
}
