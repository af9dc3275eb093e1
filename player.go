package main

const (
	PlayerMaxHealth = 100
	HitDamage       = 10
	RespawnDelayMs  = 3000.0

	// Hit box half-extents for the point-vs-player proximity test.
	PlayerHitHalfW = 20.0
	PlayerHitHalfH = 24.0

	// Team spawn points: red on the left edge, blue near the right edge,
	// same height. Used at join and at every respawn.
	RedSpawnX  = 200.0
	BlueSpawnX = 2800.0
	SpawnY     = 1400.0
)

// Team identifies one of the two sides.
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// Player is the authoritative state for one connected player. Keyed by
// session id; owned by the room's Battle and only ever touched under the
// room lock.
type Player struct {
	ID           string
	Name         string
	X, Y         float64
	VX, VY       float64
	Health       int
	Team         Team
	IsDashing    bool
	FlipX        bool
	IsDead       bool
	RespawnTimer float64 // ms until respawn, meaningful only while dead
}

// NewPlayer creates a player at its team spawn point. An empty name
// defaults to a prefix of the session id.
func NewPlayer(id string, team Team, name string) *Player {
	if name == "" {
		name = shortName(id)
	}
	x, y := SpawnPosition(team)
	return &Player{
		ID:     id,
		Name:   name,
		X:      x,
		Y:      y,
		Health: PlayerMaxHealth,
		Team:   team,
	}
}

// SpawnPosition returns the fixed spawn coordinate for a team.
func SpawnPosition(team Team) (float64, float64) {
	if team == TeamBlue {
		return BlueSpawnX, SpawnY
	}
	return RedSpawnX, SpawnY
}

// TakeDamage reduces health and returns true if the player died. Health is
// clamped to 0 and pinned there until respawn; hits on a dead player are
// no-ops.
func (p *Player) TakeDamage(dmg int) bool {
	if p.IsDead {
		return false
	}
	p.Health -= dmg
	if p.Health <= 0 {
		p.Health = 0
		p.IsDead = true
		p.RespawnTimer = RespawnDelayMs
		return true
	}
	return false
}

// Respawn revives the player at its team spawn with full health.
func (p *Player) Respawn() {
	x, y := SpawnPosition(p.Team)
	p.X = x
	p.Y = y
	p.VX = 0
	p.VY = 0
	p.Health = PlayerMaxHealth
	p.IsDead = false
	p.RespawnTimer = 0
}

// ToState converts to the replicated wire form.
func (p *Player) ToState() PlayerState {
	return PlayerState{
		ID:        p.ID,
		Name:      p.Name,
		X:         p.X,
		Y:         p.Y,
		VX:        p.VX,
		VY:        p.VY,
		Health:    p.Health,
		Team:      string(p.Team),
		IsDashing: p.IsDashing,
		FlipX:     p.FlipX,
		IsDead:    p.IsDead,
	}
}

// shortName derives a display name from the first characters of an id.
func shortName(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}
