package handlers

// games.go — side-bet games and their settlement.
//
// A game is created with its players and wagers fixed, scores are entered one
// hole at a time, and GET /games/:id/settlement computes the payout view on
// demand. Settlement results are cached per game with a short TTL and
// invalidated on every score write, so the engine stays stateless while the
// polling scorecard screen stays cheap.

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/scorecache"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/settlement"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/websocket"
)

// CreateGameRequest is the JSON body for POST /api/v1/games.
type CreateGameRequest struct {
	Kind         string              `json:"kind"` // "individual_net" or "niners"
	CourseID     *string             `json:"course_id"`
	AutoHandicap *bool               `json:"auto_handicap"` // defaults to true
	Front9Bet    *string             `json:"front9_bet"`    // decimal strings; absent = no bet
	Back9Bet     *string             `json:"back9_bet"`
	OverallBet   *string             `json:"overall_bet"`
	PotBet       *string             `json:"pot_bet"`
	PointValue   *string             `json:"point_value"` // niners
	Players      []GamePlayerRequest `json:"players"`
}

// GamePlayerRequest is one participant in the create request, in scoring order.
type GamePlayerRequest struct {
	Name     string  `json:"name"`
	Handicap float64 `json:"handicap"`
	MemberID *string `json:"member_id"`
	InPot    *bool   `json:"in_pot"`   // defaults to true
	PotOnly  bool    `json:"pot_only"` // rides the pot without playing
}

// GameResponse is the game detail view.
type GameResponse struct {
	ID           string               `json:"id"`
	Kind         string               `json:"kind"`
	AutoHandicap bool                 `json:"auto_handicap"`
	Front9Bet    string               `json:"front9_bet"`
	Back9Bet     string               `json:"back9_bet"`
	OverallBet   string               `json:"overall_bet"`
	PotBet       string               `json:"pot_bet"`
	PointValue   string               `json:"point_value"`
	Players      []GamePlayerResponse `json:"players"`
	CreatedAt    string               `json:"created_at"`
}

// GamePlayerResponse is one participant with their entered scores.
type GamePlayerResponse struct {
	Position int         `json:"position"`
	Name     string      `json:"name"`
	Handicap float64     `json:"handicap"`
	InPot    bool        `json:"in_pot"`
	PotOnly  bool        `json:"pot_only"`
	Scores   map[int]int `json:"scores"` // hole number -> gross
}

func gameResponse(g models.Game) GameResponse {
	players := make([]GamePlayerResponse, 0, len(g.Players))
	for _, p := range g.Players {
		scores := make(map[int]int, len(p.Scores))
		for _, s := range p.Scores {
			scores[s.HoleNumber] = s.GrossScore
		}
		players = append(players, GamePlayerResponse{
			Position: p.Position,
			Name:     p.Name,
			Handicap: p.Handicap,
			InPot:    p.InPot,
			PotOnly:  p.PotOnly,
			Scores:   scores,
		})
	}
	return GameResponse{
		ID:           g.ID.String(),
		Kind:         string(g.Kind),
		AutoHandicap: g.AutoHandicap,
		Front9Bet:    g.Front9Bet.StringFixed(2),
		Back9Bet:     g.Back9Bet.StringFixed(2),
		OverallBet:   g.OverallBet.StringFixed(2),
		PotBet:       g.PotBet.StringFixed(2),
		PointValue:   g.PointValue.StringFixed(2),
		Players:      players,
		CreatedAt:    g.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func parseBet(s *string) (decimal.Decimal, bool) {
	if s == nil || *s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(*s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// CreateGame returns a handler for POST /api/v1/games.
// Any member can start a game. Niners requires exactly three scored players;
// individual-net at least two plus any number of pot-only riders.
func CreateGame(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, _, err := currentMember(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		var req CreateGameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		kind := models.GameKind(req.Kind)
		switch kind {
		case models.GameKindIndividualNet, models.GameKindNiners:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "kind must be 'individual_net' or 'niners'",
			})
		}

		scored := 0
		for _, p := range req.Players {
			if p.Name == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "every player needs a name",
				})
			}
			if p.Handicap < 0 || p.Handicap > 54 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "handicap must be between 0 and 54",
				})
			}
			if !p.PotOnly {
				scored++
			}
		}
		if kind == models.GameKindNiners && scored != 3 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "niners needs exactly 3 scored players",
			})
		}
		if kind == models.GameKindIndividualNet && scored < 2 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "individual_net needs at least 2 scored players",
			})
		}

		front9, ok := parseBet(req.Front9Bet)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid front9_bet"})
		}
		back9, ok := parseBet(req.Back9Bet)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid back9_bet"})
		}
		overall, ok := parseBet(req.OverallBet)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid overall_bet"})
		}
		pot, ok := parseBet(req.PotBet)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid pot_bet"})
		}
		pointValue, ok := parseBet(req.PointValue)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid point_value"})
		}

		autoHandicap := true
		if req.AutoHandicap != nil {
			autoHandicap = *req.AutoHandicap
		}

		var courseID *uuid.UUID
		if req.CourseID != nil && *req.CourseID != "" {
			parsed, err := uuid.Parse(*req.CourseID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid course_id",
				})
			}
			courseID = &parsed
		}

		game := models.Game{
			Kind:         kind,
			CourseID:     courseID,
			AutoHandicap: autoHandicap,
			Front9Bet:    front9,
			Back9Bet:     back9,
			OverallBet:   overall,
			PotBet:       pot,
			PointValue:   pointValue,
			CreatedBy:    memberID,
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&game).Error; err != nil {
				return err
			}
			for i, p := range req.Players {
				inPot := true
				if p.InPot != nil {
					inPot = *p.InPot
				}
				var pMemberID *uuid.UUID
				if p.MemberID != nil && *p.MemberID != "" {
					parsed, err := uuid.Parse(*p.MemberID)
					if err != nil {
						return err
					}
					pMemberID = &parsed
				}
				player := models.GamePlayer{
					GameID:   game.ID,
					Position: i,
					Name:     p.Name,
					Handicap: p.Handicap,
					MemberID: pMemberID,
					InPot:    inPot,
					PotOnly:  p.PotOnly,
				}
				if err := tx.Create(&player).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create game",
			})
		}

		db.Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).First(&game, "id = ?", game.ID)
		return c.Status(fiber.StatusCreated).JSON(gameResponse(game))
	}
}

// ListGames returns a handler for GET /api/v1/games.
// Returns the caller's games, newest first. Pot-only rides count.
func ListGames(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, _, err := currentMember(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		var games []models.Game
		err = db.
			Joins("LEFT JOIN game_players ON game_players.game_id = games.id").
			Where("games.created_by = ? OR game_players.member_id = ?", memberID, memberID).
			Group("games.id").
			Order("games.created_at DESC").
			Preload("Players", func(db *gorm.DB) *gorm.DB {
				return db.Order("position")
			}).
			Preload("Players.Scores").
			Find(&games).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch games",
			})
		}

		response := make([]GameResponse, 0, len(games))
		for _, g := range games {
			response = append(response, gameResponse(g))
		}
		return c.JSON(response)
	}
}

// GetGame returns a handler for GET /api/v1/games/:id.
func GetGame(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}
		game, err := loadGame(db, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "game not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch game",
			})
		}
		return c.JSON(gameResponse(game))
	}
}

// UpsertGameScore returns a handler for PUT /api/v1/games/:id/players/:position/scores/:hole.
// Writes one gross score, invalidates the cached settlement, and broadcasts
// the write to the game's live feed.
func UpsertGameScore(db *gorm.DB, hub *websocket.Hub, cache *scorecache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}
		position, err := c.ParamsInt("position")
		if err != nil || position < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid player position",
			})
		}
		hole, err := c.ParamsInt("hole")
		if err != nil || hole < 1 || hole > 18 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "hole must be between 1 and 18",
			})
		}

		var req UpsertScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.GrossScore < 1 || req.GrossScore > 20 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "gross_score must be between 1 and 20",
			})
		}

		var player models.GamePlayer
		err = db.Where("game_id = ? AND position = ?", gameID, position).First(&player).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "game player not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error",
			})
		}
		if player.PotOnly {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "pot-only players do not enter scores",
			})
		}

		var score models.GameHoleScore
		err = db.Where("game_player_id = ? AND hole_number = ?", player.ID, hole).First(&score).Error
		switch {
		case err == nil:
			score.GrossScore = req.GrossScore
			err = db.Save(&score).Error
		case err == gorm.ErrRecordNotFound:
			score = models.GameHoleScore{
				GamePlayerID: player.ID,
				HoleNumber:   hole,
				GrossScore:   req.GrossScore,
			}
			err = db.Create(&score).Error
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save score",
			})
		}

		// The cached settlement is stale the moment a score lands.
		cache.Invalidate(gameID.String())

		payload, _ := json.Marshal(fiber.Map{
			"position":    position,
			"hole_number": hole,
			"gross_score": req.GrossScore,
		})
		hub.Broadcast("game:"+gameID.String(), payload)

		return c.JSON(fiber.Map{
			"position":    position,
			"hole_number": hole,
			"gross_score": req.GrossScore,
		})
	}
}

// GetSettlement returns a handler for GET /api/v1/games/:id/settlement.
// The settlement is recomputed from the stored scores on demand; a game the
// engine can't settle (no stakes, unsupported shape) responds with a null
// settlement rather than an error, and the client decides how to render that.
func GetSettlement(db *gorm.DB, cache *scorecache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}

		if cached, ok := cache.Get(id.String()); ok {
			return c.JSON(cached)
		}

		game, err := loadGame(db, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "game not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch game",
			})
		}

		strokeIndexes := loadStrokeIndexes(db, game.CourseID)
		input, scores := settlementInput(game)
		strokeFn := strokePolicy(input, strokeIndexes)

		var response fiber.Map
		switch input.Type {
		case settlement.GameTypeIndividualNet:
			result := settlement.SettleIndividualNet(input, scores, strokeFn)
			if result == nil {
				response = fiber.Map{"settlement": nil}
			} else {
				response = fiber.Map{"settlement": result}
			}
		case settlement.GameTypeNiners:
			result := settlement.SettleNiners(input, scores, strokeFn)
			if result == nil {
				response = fiber.Map{"settlement": nil}
			} else {
				response = fiber.Map{"settlement": result}
			}
		}

		cache.Put(id.String(), response)
		return c.JSON(response)
	}
}

// loadGame fetches a game with its players (in scoring order) and scores.
func loadGame(db *gorm.DB, id uuid.UUID) (models.Game, error) {
	var game models.Game
	err := db.
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Players.Scores").
		First(&game, "id = ?", id).Error
	return game, err
}

// loadStrokeIndexes returns hole number -> stroke index for the game's course,
// or nil when the game has no course on record.
func loadStrokeIndexes(db *gorm.DB, courseID *uuid.UUID) map[int]int {
	if courseID == nil {
		return nil
	}
	var holes []models.CourseHole
	if err := db.Where("course_id = ?", courseID).Find(&holes).Error; err != nil {
		return nil
	}
	indexes := make(map[int]int, len(holes))
	for _, h := range holes {
		indexes[h.HoleNumber] = h.StrokeIndex
	}
	return indexes
}

// settlementInput converts a loaded game row into the settlement engine's
// input shape: scored players in position order become the main group,
// pot-only players become pot riders, and wagers drop from decimal to the
// float64 the engine's comparison semantics are defined over.
func settlementInput(game models.Game) (settlement.Game, settlement.HoleScores) {
	input := settlement.Game{
		Type:         settlement.GameType(game.Kind),
		AutoHandicap: game.AutoHandicap,
		Bets: settlement.Bets{
			Front9:  game.Front9Bet.InexactFloat64(),
			Back9:   game.Back9Bet.InexactFloat64(),
			Overall: game.OverallBet.InexactFloat64(),
			Pot:     game.PotBet.InexactFloat64(),
		},
		PointValue: game.PointValue.InexactFloat64(),
	}

	scores := settlement.HoleScores{}
	for _, p := range game.Players {
		if p.PotOnly {
			input.PotPlayers = append(input.PotPlayers, settlement.PotPlayer{
				Name:     p.Name,
				Handicap: p.Handicap,
				MemberID: p.MemberID,
			})
			continue
		}
		idx := len(input.Players)
		input.Players = append(input.Players, settlement.Player{
			Name:     p.Name,
			Handicap: p.Handicap,
			MemberID: p.MemberID,
			InPot:    p.InPot,
		})
		if len(p.Scores) > 0 {
			holeMap := make(map[int]int, len(p.Scores))
			for _, s := range p.Scores {
				holeMap[s.HoleNumber] = s.GrossScore
			}
			scores[idx] = holeMap
		}
	}
	return input, scores
}

// strokePolicy builds the engine's stroke predicate from a course's
// stroke-index table. Automatic-handicap games never consult it; manual games
// without a course allocate no strokes, which the engine treats as net==gross.
func strokePolicy(input settlement.Game, strokeIndexes map[int]int) settlement.StrokeFunc {
	if input.AutoHandicap || len(strokeIndexes) == 0 {
		return nil
	}
	return func(p settlement.Player, playerIndex, hole int) bool {
		idx, ok := strokeIndexes[hole]
		if !ok {
			return false
		}
		return receivesStroke(int(p.Handicap), idx)
	}
}
