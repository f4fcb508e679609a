package command

import (
	"errors"
	"fmt"
	"huddlebot/internal/core/domain"
	"math/rand"
	"strings"
	"sync"
)

const cahHandSize = 7

var (
	errNoGame          = errors.New("no game in progress")
	errGameRunning     = errors.New("a game is already in progress")
	errNotInLobby      = errors.New("the game has already started")
	errNotStarted      = errors.New("the game has not started yet")
	errNotPlaying      = errors.New("cards cannot be played right now")
	errNotJudging      = errors.New("there is nothing to pick yet")
	errNotAPlayer      = errors.New("you have not joined this game")
	errAlreadyJoined   = errors.New("you have already joined")
	errCzarCannotPlay  = errors.New("the card czar does not play a card")
	errOnlyCzarPicks   = errors.New("only the card czar picks a winner")
	errAlreadyPlayed   = errors.New("you have already played a card this round")
	errCardOutOfRange  = errors.New("no card with that number")
	errTooFewPlayers   = errors.New("at least three players are needed")
	errOutOfCards      = errors.New("the deck ran out of cards")
	errInvalidRounds  = errors.New("enter a round count between 1 and 20")
)

type gamePhase int

const (
	phaseLobby gamePhase = iota
	phasePlaying
	phaseJudging
	phaseFinished
)

type cahPlayer struct {
	username string
	hand     []string
	played   string
	score    int
}

// CahGame holds one card game round-trip: lobby, then per round every player
// but the czar plays a card, the czar picks a winner, the czar seat rotates.
type CahGame struct {
	phase     gamePhase
	rounds    int
	round     int
	players   []*cahPlayer
	czar      int
	prompts   []string
	answers   []string
	prompt    string
	submitted []*cahPlayer
	rng       *rand.Rand
}

func NewCahGame(rounds int, deck *domain.Deck, rng *rand.Rand) *CahGame {
	g := &CahGame{
		rounds:  rounds,
		prompts: append([]string(nil), deck.Prompts...),
		answers: append([]string(nil), deck.Answers...),
		rng:     rng,
	}

	rng.Shuffle(len(g.prompts), func(i, j int) { g.prompts[i], g.prompts[j] = g.prompts[j], g.prompts[i] })
	rng.Shuffle(len(g.answers), func(i, j int) { g.answers[i], g.answers[j] = g.answers[j], g.answers[i] })

	return g
}

func (g *CahGame) Join(username string) (string, error) {
	if g.phase != phaseLobby {
		return "", errNotInLobby
	}

	if g.player(username) != nil {
		return "", errAlreadyJoined
	}

	g.players = append(g.players, &cahPlayer{username: username})

	return fmt.Sprintf("@%s joined the game (%d players). Start with `!start`.",
		username, len(g.players)), nil
}

func (g *CahGame) Start() (string, error) {
	if g.phase != phaseLobby {
		return "", errNotInLobby
	}

	if len(g.players) < 3 {
		return "", errTooFewPlayers
	}

	for _, player := range g.players {
		if !g.deal(player) {
			return "", errOutOfCards
		}
	}

	g.round = 1
	if !g.drawPrompt() {
		return "", errOutOfCards
	}
	g.phase = phasePlaying

	return g.roundMessage(), nil
}

// Play submits the numbered card from the player's hand. When every player
// but the czar has played, the round moves to judging.
func (g *CahGame) Play(username string, n int) (string, error) {
	if g.phase != phasePlaying {
		if g.phase == phaseLobby {
			return "", errNotStarted
		}
		return "", errNotPlaying
	}

	player := g.player(username)
	if player == nil {
		return "", errNotAPlayer
	}

	if player == g.players[g.czar] {
		return "", errCzarCannotPlay
	}

	if player.played != "" {
		return "", errAlreadyPlayed
	}

	if n < 1 || n > len(player.hand) {
		return "", errCardOutOfRange
	}

	player.played = player.hand[n-1]
	player.hand = append(player.hand[:n-1], player.hand[n:]...)
	g.submitted = append(g.submitted, player)

	if len(g.submitted) < len(g.players)-1 {
		return fmt.Sprintf("@%s played a card (%d of %d in).",
			username, len(g.submitted), len(g.players)-1), nil
	}

	g.phase = phaseJudging

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "All cards are in! @%s, pick a winner with `!pick <n>`:\n\n**%s**\n",
		g.players[g.czar].username, g.prompt)
	for i, submitter := range g.submitted {
		fmt.Fprintf(sb, "%d. %s\n", i+1, submitter.played)
	}

	return sb.String(), nil
}

// Pick lets the czar choose the winning submission and advances the game.
func (g *CahGame) Pick(username string, n int) (string, error) {
	if g.phase != phaseJudging {
		return "", errNotJudging
	}

	if g.player(username) != g.players[g.czar] {
		return "", errOnlyCzarPicks
	}

	if n < 1 || n > len(g.submitted) {
		return "", errCardOutOfRange
	}

	winner := g.submitted[n-1]
	winner.score++

	result := fmt.Sprintf("@%s wins the round with \"%s\"!", winner.username, winner.played)

	if g.round >= g.rounds {
		g.phase = phaseFinished
		return result + "\n\n" + g.finalMessage(), nil
	}

	g.round++
	g.czar = (g.czar + 1) % len(g.players)
	g.submitted = nil
	g.prompt = ""

	for _, player := range g.players {
		player.played = ""
		if !g.deal(player) {
			g.phase = phaseFinished
			return result + "\nThe deck ran out of cards.\n\n" + g.finalMessage(), nil
		}
	}

	if !g.drawPrompt() {
		g.phase = phaseFinished
		return result + "\nThe deck ran out of cards.\n\n" + g.finalMessage(), nil
	}

	g.phase = phasePlaying

	return result + "\n\n" + g.roundMessage(), nil
}

func (g *CahGame) Scores() string {
	sb := &strings.Builder{}
	sb.WriteString("++**Scores:**++")
	for _, player := range g.players {
		fmt.Fprintf(sb, "\n%s: %d", player.username, player.score)
	}

	return sb.String()
}

func (g *CahGame) finished() bool {
	return g.phase == phaseFinished
}

func (g *CahGame) finalMessage() string {
	top := 0
	for _, player := range g.players {
		if player.score > top {
			top = player.score
		}
	}

	winners := make([]string, 0, 1)
	for _, player := range g.players {
		if player.score == top {
			winners = append(winners, "@"+player.username)
		}
	}

	return fmt.Sprintf("The game is over! Winner: %s\n\n%s",
		strings.Join(winners, ", "), g.Scores())
}

func (g *CahGame) roundMessage() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "++**Round %d of %d**++\nCard czar: @%s\n\n**%s**\n",
		g.round, g.rounds, g.players[g.czar].username, g.prompt)

	for _, player := range g.players {
		if player == g.players[g.czar] {
			continue
		}
		fmt.Fprintf(sb, "\n@%s's hand:\n", player.username)
		for i, card := range player.hand {
			fmt.Fprintf(sb, "%d. %s\n", i+1, card)
		}
	}

	sb.WriteString("\nPlay a card with `!card <n>`.")

	return sb.String()
}

func (g *CahGame) player(username string) *cahPlayer {
	for _, player := range g.players {
		if strings.EqualFold(player.username, username) {
			return player
		}
	}

	return nil
}

func (g *CahGame) deal(player *cahPlayer) bool {
	for len(player.hand) < cahHandSize {
		if len(g.answers) == 0 {
			return false
		}
		player.hand = append(player.hand, g.answers[0])
		g.answers = g.answers[1:]
	}

	return true
}

func (g *CahGame) drawPrompt() bool {
	if len(g.prompts) == 0 {
		return false
	}

	g.prompt = g.prompts[0]
	g.prompts = g.prompts[1:]

	return true
}

// CahSession owns the single running game for the bot chat. All game
// commands go through it so game state never lives in package globals.
type CahSession struct {
	mutex sync.Mutex
	game  *CahGame
}

func (s *CahSession) begin(game *CahGame) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.game != nil && !s.game.finished() {
		return errGameRunning
	}

	s.game = game

	return nil
}

func (s *CahSession) current() (*CahGame, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.game == nil || s.game.finished() {
		return nil, errNoGame
	}

	return s.game, nil
}

func (s *CahSession) end() (*CahGame, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.game == nil || s.game.finished() {
		return nil, errNoGame
	}

	game := s.game
	game.phase = phaseFinished
	s.game = nil

	return game, nil
}
