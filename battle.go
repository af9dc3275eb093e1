package main

const (
	WinScore          = 30
	MaxPlayersPerRoom = 8
	MinPlayersToStart = 2
)

// GamePhase is the match lifecycle. Transitions are monotonic:
// waiting -> playing -> ended, never backward.
type GamePhase string

const (
	PhaseWaiting GamePhase = "waiting"
	PhasePlaying GamePhase = "playing"
	PhaseEnded   GamePhase = "ended"
)

// TeamScores holds the kill counters. Monotonic during a match; reset only
// by creating a new Battle.
type TeamScores struct {
	Red  int
	Blue int
}

// ForTeam returns the counter for a team.
func (s TeamScores) ForTeam(t Team) int {
	if t == TeamBlue {
		return s.Blue
	}
	return s.Red
}

// Battle is the authoritative state of one match: one instance per room,
// lifetime bound to the room. Not safe for concurrent use on its own; the
// room lock serializes every access.
type Battle struct {
	Players     map[string]*Player
	Bullets     []*Bullet
	Scores      TeamScores
	Phase       GamePhase
	GameTime    float64 // ms, advances only while playing
	WinningTeam Team    // "" until the match ends
}

// NewBattle creates an empty battle in the waiting phase.
func NewBattle() *Battle {
	return &Battle{
		Players: make(map[string]*Player),
		Phase:   PhaseWaiting,
	}
}

// AddPlayer creates a player for a session id, auto-balancing teams: the
// new player goes to whichever side has fewer members, ties favor red.
// The match starts once at least two players are present.
func (b *Battle) AddPlayer(id, name string) *Player {
	team := TeamBlue
	if b.TeamCount(TeamRed) <= b.TeamCount(TeamBlue) {
		team = TeamRed
	}
	p := NewPlayer(id, team, name)
	b.Players[id] = p

	if b.Phase == PhaseWaiting && len(b.Players) >= MinPlayersToStart {
		b.Phase = PhasePlaying
	}
	return p
}

// RemovePlayer deletes a player. If the match is playing and the removal
// empties the leaver's team, the remaining team wins immediately.
func (b *Battle) RemovePlayer(id string) {
	p, ok := b.Players[id]
	if !ok {
		return
	}
	delete(b.Players, id)

	if b.Phase == PhasePlaying && b.TeamCount(p.Team) == 0 {
		winner := p.Team.Opponent()
		if b.TeamCount(winner) > 0 {
			b.EndMatch(winner)
		}
	}
}

// TeamCount returns the number of players on a team. Plain scan: rooms hold
// at most eight players.
func (b *Battle) TeamCount(t Team) int {
	n := 0
	for _, p := range b.Players {
		if p.Team == t {
			n++
		}
	}
	return n
}

// PlayersInTeam returns the players on a team.
func (b *Battle) PlayersInTeam(t Team) []*Player {
	var out []*Player
	for _, p := range b.Players {
		if p.Team == t {
			out = append(out, p)
		}
	}
	return out
}

// AddBullet appends a live bullet.
func (b *Battle) AddBullet(bl *Bullet) {
	b.Bullets = append(b.Bullets, bl)
}

// RemoveBullet removes a bullet by id. Idempotent: removing an id that is
// already gone is a no-op. Expiry timers and the tick loop can race on the
// same bullet, whichever runs second must not fail.
func (b *Battle) RemoveBullet(id string) bool {
	for i, bl := range b.Bullets {
		if bl.ID == id {
			b.Bullets = append(b.Bullets[:i], b.Bullets[i+1:]...)
			return true
		}
	}
	return false
}

// EndMatch declares a winner. The first call wins; the phase never leaves
// ended and the winner is never rewritten.
func (b *Battle) EndMatch(winner Team) {
	if b.Phase == PhaseEnded {
		return
	}
	b.Phase = PhaseEnded
	b.WinningTeam = winner
}
