// Package settlement implements the side-bet settlement engine for recreational
// golf games. Given a game's configuration (players, handicaps, wagers), the
// hole-by-hole gross scores, and a stroke allocation policy, it computes net
// scores, determines the winner of each betting segment, turns winners into
// signed per-player amounts, and reduces the resulting balances to a minimal
// list of payer-to-payee transactions.
//
// The engine is pure: it takes an in-memory snapshot, returns fresh result
// structs, and holds no state between calls. It never touches the database and
// never errors — inputs it cannot settle (wrong game type, wrong player count,
// no stakes configured) produce a nil result, which the calling handler treats
// as "settlement not applicable" rather than a failure.
package settlement

import "github.com/google/uuid"

// GameType tags which settlement variant a game uses.
// Other formats played at the club (skins, wolf, etc.) are entered in the app
// but settled by hand; the engine only knows these two.
type GameType string

const (
	GameTypeIndividualNet GameType = "individual_net" // net stroke play with front9/back9/overall/pot wagers
	GameTypeNiners        GameType = "niners"         // 3-player points game, 9 points per hole
)

// Player is a member of the scored playing group.
type Player struct {
	Name     string     // display name; not required to be unique
	Handicap float64    // non-negative, typically 0-54; fractional indexes allowed
	MemberID *uuid.UUID // optional link to a club member record; nil for guests
	InPot    bool       // whether this player is in the whole-game pot pool
}

// PotPlayer participates only in the whole-game pot wager. Pot players are not
// scored over the 18 holes, so they can never win the pot — only lose it to the
// main group's overall winner. Handicap is carried for display only.
type PotPlayer struct {
	Name     string
	Handicap float64
	MemberID *uuid.UUID
}

// Bets holds the wager per betting segment for an individual-net game.
// A zero amount means no bet on that segment.
type Bets struct {
	Front9  float64
	Back9   float64
	Overall float64
	Pot     float64
}

// Game is the settlement input for one side-bet game. It is a tagged union:
// Type selects the variant, Bets applies only to individual-net games and
// PointValue only to niners. Entry points check the tag and return nil on a
// mismatch rather than guessing.
type Game struct {
	Type         GameType
	Pars         [18]int // par per hole, index 0 = hole 1
	AutoHandicap bool    // true: strokes from the floor/ceil handicap split; false: per-hole stroke marks
	Players      []Player
	PotPlayers   []PotPlayer
	Bets         Bets    // individual-net only
	PointValue   float64 // niners only: dollars per point
}

// HoleScores maps player index -> hole number (1-18) -> gross strokes.
// A missing entry means the hole has not been scored yet.
type HoleScores map[int]map[int]int

// StrokeFunc reports whether a player receives a handicap stroke on the given
// hole (1-18). It is supplied by the caller in manual-allocation mode, driven
// by the course's stroke-index table. A nil StrokeFunc allocates no strokes.
type StrokeFunc func(p Player, playerIndex, hole int) bool

// SegmentScores is one player's gross and net totals per betting segment.
// A half total of 0 is the sentinel for "incomplete" — the half only counts
// once all nine of its holes have a recorded score. OverallGross is the sum of
// the two halves, so it is likewise zero unless both halves are complete.
type SegmentScores struct {
	Front9Gross  int     `json:"front9_gross"`
	Back9Gross   int     `json:"back9_gross"`
	OverallGross int     `json:"overall_gross"`
	Front9Net    float64 `json:"front9_net"`
	Back9Net     float64 `json:"back9_net"`
	OverallNet   float64 `json:"overall_net"`
}

// Winners holds the per-segment winner as an index into Game.Players.
// nil means no winner: either no player has completed the segment, or the
// lowest net score is shared. Ties are deliberately never broken.
type Winners struct {
	Front9  *int `json:"front9"`
	Back9   *int `json:"back9"`
	Overall *int `json:"overall"`
	Pot     *int `json:"pot"`
}

// PlayerPayment is one participant's signed settlement amounts. Positive means
// the player collects, negative means they pay. For niners only Points and
// Total are populated.
type PlayerPayment struct {
	Name    string  `json:"name"`
	Front9  float64 `json:"front9"`
	Back9   float64 `json:"back9"`
	Overall float64 `json:"overall"`
	Pot     float64 `json:"pot"`
	Points  int     `json:"points"` // niners only
	Total   float64 `json:"total"`
}

// Balance is a named signed amount fed to the debt reducer.
type Balance struct {
	Name   string
	Amount float64
}

// Transaction is one settling payment: From pays To the given amount.
type Transaction struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// IndividualNetResult is the full settlement of an individual-net game.
type IndividualNetResult struct {
	Results      []SegmentScores `json:"results"` // per main player, same order as Game.Players
	Winners      Winners         `json:"winners"`
	Payments     []PlayerPayment `json:"player_payments"` // main players first, then pot players
	Transactions []Transaction   `json:"transactions"`
}

// NinersResult is the full settlement of a 3-player niners game.
type NinersResult struct {
	HolePoints   []HolePoints    `json:"hole_points"`
	Totals       [3]int          `json:"totals"`
	Payments     []PlayerPayment `json:"player_payments"`
	Transactions []Transaction   `json:"transactions"`
}

// HolePoints is the points awarded on one hole of a niners game, indexed by
// player position in Game.Players. A hole where any of the three players has
// no score awards nothing and is omitted from the breakdown.
type HolePoints struct {
	Hole   int    `json:"hole"`
	Points [3]int `json:"points"`
}
