// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go
// values; the struct field tags tell GORM each column's type, constraints, defaults,
// and relationships.
//
// The data model represents a golf club management platform:
//   - Members belong to the club and carry a handicap index and a global role
//   - Events (tournaments, social rounds, league nights) take Registrations
//   - Registered players are placed into TeeGroups (tee times) and enter Scores per hole
//   - RolexAwards accumulate season leaderboard points per member per event
//   - Transactions and Payments keep the club's financial ledger
//   - Games are informal side-bet games whose settlement is computed by the
//     settlement package from the stored GameHoleScore rows
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys. UUIDs are
	// safe to generate client-side and don't leak record counts to end users.
	"github.com/google/uuid"

	// decimal stores exact currency values. Money at rest is never a float —
	// the ledger has to add up to the cent no matter how many rows it has.
	"github.com/shopspring/decimal"
)

// --- Enums ---
// Go has no enum keyword; a named string type plus constants gives type safety
// while keeping the stored values human-readable.

// MemberRole is a member's global permission level across the platform.
type MemberRole string

const (
	MemberRoleAdmin   MemberRole = "admin"   // Full access: manage members, events, finances
	MemberRoleManager MemberRole = "manager" // Can create and manage events and tee sheets
	MemberRoleMember  MemberRole = "member"  // Regular player: register, enter scores, play games
)

// MemberStatus tracks a membership's standing.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusSuspended MemberStatus = "suspended" // Dues unpaid or disciplinary hold
	MemberStatusLapsed    MemberStatus = "lapsed"    // Membership expired without renewal
)

// EventType describes what kind of club event is being organized.
type EventType string

const (
	EventTypeTournament  EventType = "tournament"   // Competitive event with Rolex points
	EventTypeSocial      EventType = "social"       // Casual outing; no standings
	EventTypeLeagueNight EventType = "league_night" // Recurring weekly league play
)

// EventStatus tracks the lifecycle of an event.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOpen      EventStatus = "open"   // Registration window is open
	EventStatusActive    EventStatus = "active" // Play in progress
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// RegistrationStatus tracks a member's participation state in an event.
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusWaitlisted RegistrationStatus = "waitlisted"
	RegistrationStatusWithdrawn  RegistrationStatus = "withdrawn"
	RegistrationStatusCompleted  RegistrationStatus = "completed"
)

// TransactionType categorizes a ledger entry.
type TransactionType string

const (
	TransactionTypeDues       TransactionType = "dues"
	TransactionTypeEntryFee   TransactionType = "entry_fee"
	TransactionTypePayout     TransactionType = "payout"
	TransactionTypeRefund     TransactionType = "refund"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// PaymentStatus tracks a payment-processor capture.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusCaptured PaymentStatus = "captured"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// GameKind mirrors the settlement engine's game-type tag in the database.
// Other formats can be recorded but are settled by hand in the clubhouse.
type GameKind string

const (
	GameKindIndividualNet GameKind = "individual_net"
	GameKindNiners        GameKind = "niners"
)

// --- Models ---
// Each struct maps to a table. GORM snake_cases and pluralizes the struct name
// for the table name by default: Member -> members, Event -> events, etc.

// Member is a registered person in the club. Members are created automatically
// the first time an authenticated user hits the API; AuthID links our record to
// the identity provider's user.
type Member struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuthID        *string      `gorm:"uniqueIndex:idx_members_auth_id"` // Identity provider user ID; pointer = nullable for legacy rows
	DisplayName   string       `gorm:"not null"`
	Email         string       `gorm:"uniqueIndex;not null"`
	AvatarURL     *string
	Role          MemberRole   `gorm:"type:member_role;not null;default:'member'"`
	Status        MemberStatus `gorm:"type:member_status;not null;default:'active'"`
	HandicapIndex *float64     `gorm:"type:decimal(4,1)"` // WHS handicap index (e.g. 14.2); nil until posted
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Course is a golf course the club plays.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null;default:''"`
	State     string    `gorm:"not null;default:''"`
	Par       int       `gorm:"not null;default:72"`
	HoleCount int       `gorm:"not null;default:18"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Holes     []CourseHole `gorm:"foreignKey:CourseID"`
}

// CourseHole stores per-hole details. The stroke index drives manual handicap
// stroke allocation in side-bet games: the hole with index 1 is the hardest
// and receives the first stroke.
type CourseHole struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_hole"`
	Course      Course    `gorm:"foreignKey:CourseID"`
	HoleNumber  int       `gorm:"not null;uniqueIndex:idx_course_hole"` // 1-18
	Par         int       `gorm:"not null"`
	StrokeIndex int       `gorm:"not null"`
	Yardage     *int
}

// Event is the top-level container for club competition and outings.
// Who is playing is tracked via Registration; who may manage it is the
// creating manager or any admin.
type Event struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string          `gorm:"not null"`
	Description       *string
	EventType         EventType       `gorm:"type:event_type;not null"`
	Status            EventStatus     `gorm:"type:event_status;not null;default:'upcoming'"`
	CourseID          *uuid.UUID      `gorm:"type:uuid"`
	Course            *Course         `gorm:"foreignKey:CourseID"`
	StartDate         *time.Time
	RegistrationOpen  *time.Time // Registration window; nil means open immediately
	RegistrationClose *time.Time
	Capacity          *int            // Max registrations; nil = unlimited, overflow waitlists
	EntryFee          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	RolexPoints       bool            `gorm:"not null;default:false"` // Whether finishing positions award leaderboard points
	CreatedBy         uuid.UUID       `gorm:"type:uuid;not null"`
	Creator           Member          `gorm:"foreignKey:CreatedBy"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Registrations     []Registration `gorm:"foreignKey:EventID"`
	TeeGroups         []TeeGroup     `gorm:"foreignKey:EventID"`
}

// Registration links a Member to an Event. The unique index keeps a member
// from registering twice for the same event.
type Registration struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_event_member"`
	Event          Event              `gorm:"foreignKey:EventID"`
	MemberID       uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_event_member"`
	Member         Member             `gorm:"foreignKey:MemberID"`
	Status         RegistrationStatus `gorm:"type:registration_status;not null;default:'registered'"`
	Paid           bool               `gorm:"not null;default:false"` // Entry fee captured
	CourseHandicap *int               // Playing handicap frozen at registration for this event's course
	FinishPosition *int               // Set when the event completes
	TotalGross     *int               // Sum of gross scores across all holes
	TotalNet       *int               // Gross minus course handicap
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TeeGroup is a tee time: the players who go off together.
type TeeGroup struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventID      uuid.UUID `gorm:"type:uuid;not null"`
	Event        Event     `gorm:"foreignKey:EventID"`
	GroupNumber  int       `gorm:"not null"` // Display order: group 1 tees off first
	TeeTime      *time.Time
	StartingHole int       `gorm:"not null;default:1"` // Shotgun starts begin on other holes
	CreatedAt    time.Time
	Players      []TeeGroupPlayer `gorm:"foreignKey:TeeGroupID"`
}

// TeeGroupPlayer places a Registration into a TeeGroup. The composite primary
// key keeps a player out of two groups in the same event.
type TeeGroupPlayer struct {
	TeeGroupID     uuid.UUID    `gorm:"type:uuid;primaryKey"`
	RegistrationID uuid.UUID    `gorm:"type:uuid;primaryKey"`
	TeeGroup       TeeGroup     `gorm:"foreignKey:TeeGroupID"`
	Registration   Registration `gorm:"foreignKey:RegistrationID"`
}

// Score records the strokes a player took on one hole. Both gross and net are
// stored so either can be displayed without recomputation.
type Score struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RegistrationID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_registration_hole"`
	Registration   Registration `gorm:"foreignKey:RegistrationID"`
	HoleNumber     int          `gorm:"not null;uniqueIndex:idx_registration_hole"` // 1-18
	GrossScore     int          `gorm:"not null"`
	NetScore       int          `gorm:"not null"`
	EnteredBy      uuid.UUID    `gorm:"type:uuid;not null"` // Audit: the player, a group member, or a scorer
	Enterer        Member       `gorm:"foreignKey:EnteredBy"`
	EnteredAt      time.Time    `gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime"`
}

// RolexAward records the leaderboard points a member earned at one event.
// Standings are the per-member sum of awards over a season.
type RolexAward struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rolex_member_event"`
	Member    Member    `gorm:"foreignKey:MemberID"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rolex_member_event"`
	Event     Event     `gorm:"foreignKey:EventID"`
	Season    int       `gorm:"not null"` // Calendar year
	Position  int       `gorm:"not null"` // Finishing position the points were awarded for
	Points    int       `gorm:"not null"`
	CreatedAt time.Time
}

// Transaction is one entry in the club's financial ledger. Amount is signed:
// positive credits the club (dues, entry fees), negative debits it (payouts,
// refunds).
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MemberID    *uuid.UUID      `gorm:"type:uuid"` // Nil for club-level entries with no member
	Member      *Member         `gorm:"foreignKey:MemberID"`
	EventID     *uuid.UUID      `gorm:"type:uuid"`
	Type        TransactionType `gorm:"type:transaction_type;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"not null;default:''"`
	RecordedBy  uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}

// Payment is a capture record from the payment processor. ProcessorRef is the
// processor's charge/intent ID and is unique so replayed webhooks stay
// idempotent.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MemberID      uuid.UUID       `gorm:"type:uuid;not null"`
	Member        Member          `gorm:"foreignKey:MemberID"`
	TransactionID *uuid.UUID      `gorm:"type:uuid"` // Ledger entry this capture settles, once matched
	ProcessorRef  string          `gorm:"uniqueIndex;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status        PaymentStatus   `gorm:"type:payment_status;not null;default:'pending'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Game is an informal side-bet game played alongside a round. The wager
// columns that apply depend on Kind: the bet columns for individual-net games,
// PointValue for niners. Settlement is computed on demand by the settlement
// package; nothing about the result is persisted.
type Game struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind         GameKind        `gorm:"type:game_kind;not null"`
	CourseID     *uuid.UUID      `gorm:"type:uuid"`
	Course       *Course         `gorm:"foreignKey:CourseID"`
	AutoHandicap bool            `gorm:"not null;default:true"` // floor/ceil handicap split vs stroke-index marks
	Front9Bet    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Back9Bet     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	OverallBet   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PotBet       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PointValue   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // Niners: dollars per point
	CreatedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Players      []GamePlayer `gorm:"foreignKey:GameID"`
}

// GamePlayer is one participant in a side-bet game. Position fixes the scoring
// order for the game's duration. PotOnly players ride the whole-game pot
// without playing in the scored group.
type GamePlayer struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GameID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_game_position"`
	Game     Game       `gorm:"foreignKey:GameID"`
	Position int        `gorm:"not null;uniqueIndex:idx_game_position"` // 0-based order within the game
	Name     string     `gorm:"not null"`
	Handicap float64    `gorm:"type:decimal(4,1);not null;default:0"`
	MemberID *uuid.UUID `gorm:"type:uuid"` // Optional link to a club member; nil for guests
	InPot    bool       `gorm:"not null;default:true"`
	PotOnly  bool       `gorm:"not null;default:false"`
	Scores   []GameHoleScore `gorm:"foreignKey:GamePlayerID"`
}

// GameHoleScore is one gross score in a side-bet game. A missing row means the
// hole has not been entered yet.
type GameHoleScore struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GamePlayerID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_game_player_hole"`
	GamePlayer   GamePlayer `gorm:"foreignKey:GamePlayerID"`
	HoleNumber   int        `gorm:"not null;uniqueIndex:idx_game_player_hole"` // 1-18
	GrossScore   int        `gorm:"not null"`
	EnteredAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}
