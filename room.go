package main

import (
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate     = 60 // simulation ticks per second
	TickDuration = time.Second / TickRate
)

// Broadcaster is the outbound side of a client connection.
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Room hosts one match: the authoritative battle state, the connected
// clients and the fixed-rate simulation loop. The mutex serializes message
// handlers, the tick and bullet-expiry timers, so no two logical
// operations ever touch the battle concurrently.
type Room struct {
	ID   string
	Name string

	mu      sync.Mutex
	battle  *Battle
	clients map[string]Broadcaster
	meta    RoomInfo
	running bool
	stop    chan struct{}
}

// NewRoom creates a room with a fresh battle.
func NewRoom(id, name string) *Room {
	r := &Room{
		ID:      id,
		Name:    name,
		battle:  NewBattle(),
		clients: make(map[string]Broadcaster),
		stop:    make(chan struct{}),
	}
	r.refreshMetaLocked()
	return r
}

// Run drives the simulation loop until Stop. Each tick receives the
// measured elapsed wall time in milliseconds.
func (r *Room) Run() {
	r.mu.Lock()
	r.running = true
	r.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			deltaMs := now.Sub(last).Seconds() * 1000
			last = now
			r.Tick(deltaMs)
		case <-r.stop:
			return
		}
	}
}

// Stop terminates the simulation loop. In-flight bullet expiry timers are
// not cancelled; they no-op against the final state.
func (r *Room) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		r.running = false
		close(r.stop)
	}
}

// Join creates an auto-balanced player for the session, registers the
// client and tells it its team. Returns nil when the room is full.
func (r *Room) Join(id, name string, c Broadcaster) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.battle.Players) >= MaxPlayersPerRoom {
		return nil
	}
	p := r.battle.AddPlayer(id, name)
	r.clients[id] = c
	r.refreshMetaLocked()

	c.SendJSON(Envelope{T: MsgTeamAssigned, Data: TeamAssignedMsg{
		Team:     string(p.Team),
		PlayerID: id,
		RoomID:   r.ID,
	}})
	return p
}

// Leave removes the session's player and client. A mid-match leave that
// empties a team forfeits the match to the other side.
func (r *Room) Leave(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ended := r.battle.Phase == PhaseEnded
	r.battle.RemovePlayer(id)
	delete(r.clients, id)
	r.refreshMetaLocked()

	if !ended && r.battle.Phase == PhaseEnded {
		r.broadcastMatchEndedLocked()
	}
}

// HandleMove overwrites position, velocity and facing verbatim from the
// client. Dead or unknown senders are ignored.
func (r *Room) HandleMove(id string, m MoveMsg) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.battle.Players[id]
	if !ok || p.IsDead {
		return
	}
	p.X = m.X
	p.Y = m.Y
	p.VX = m.VelocityX
	p.VY = m.VelocityY
	p.FlipX = m.FlipX
}

// HandleDash overwrites the dashing flag verbatim.
func (r *Room) HandleDash(id string, m DashMsg) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.battle.Players[id]
	if !ok || p.IsDead {
		return
	}
	p.IsDashing = m.IsDashing
}

// HandleShoot spawns a bullet at the reported position and schedules its
// expiry. Honored only for a live sender while the match is playing.
func (r *Room) HandleShoot(id string, m ShootMsg) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.battle.Players[id]
	if !ok || p.IsDead || r.battle.Phase != PhasePlaying {
		return
	}
	b := NewBullet(bulletID(id), m.X, m.Y, m.VelocityX, p.ID, p.Team)
	r.battle.AddBullet(b)

	time.AfterFunc(BulletLifetimeMs*time.Millisecond, func() {
		r.expireBullet(b.ID)
	})
}

// expireBullet is the one-shot lifetime callback. The tick loop may have
// removed the bullet already; the second removal is a silent no-op.
func (r *Room) expireBullet(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.battle.RemoveBullet(id)
}

// Tick advances the simulation by deltaMs and pushes a state snapshot to
// every client. The simulation itself is a no-op unless the match is
// playing; the snapshot is pushed regardless.
func (r *Room) Tick(deltaMs float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.battle.Phase == PhasePlaying {
		r.stepLocked(deltaMs)
	}
	r.broadcastStateLocked()
}

// stepLocked runs one simulation step: respawns, then bullet advance, then
// collisions, then a single identity-based sweep of removed bullets.
func (r *Room) stepLocked(deltaMs float64) {
	b := r.battle
	b.GameTime += deltaMs

	// Respawns
	for _, p := range b.Players {
		if p.IsDead && p.RespawnTimer > 0 {
			p.RespawnTimer -= deltaMs
			if p.RespawnTimer <= 0 {
				p.Respawn()
			}
		}
	}

	// Advance bullets, marking the ones that leave the arena
	removed := make(map[string]bool)
	offscreen := make(map[string]bool)
	for _, bl := range b.Bullets {
		bl.X += bl.VelocityX * (deltaMs / 1000)
		if bl.Offscreen() {
			offscreen[bl.ID] = true
			removed[bl.ID] = true
		}
	}

	// Hit tests: bullet as a point against a fixed box around each live
	// enemy. A bullet keeps testing the remaining players in the same pass
	// even after its first hit.
	for _, bl := range b.Bullets {
		if offscreen[bl.ID] {
			continue
		}
		for _, p := range b.Players {
			if p.IsDead || p.ID == bl.OwnerID || p.Team == bl.OwnerTeam {
				continue
			}
			if bulletHitsPlayer(bl, p) {
				removed[bl.ID] = true
				r.applyHitLocked(bl, p)
			}
		}
	}

	// Two-phase removal by identity, immune to index shifting
	for id := range removed {
		b.RemoveBullet(id)
	}
}

// bulletHitsPlayer is the gameplay proximity test: the bullet is a point,
// the player a fixed half-extent box. Intentionally not RectanglesOverlap.
func bulletHitsPlayer(bl *Bullet, p *Player) bool {
	dx := bl.X - p.X
	dy := bl.Y - p.Y
	return dx > -PlayerHitHalfW && dx < PlayerHitHalfW &&
		dy > -PlayerHitHalfH && dy < PlayerHitHalfH
}

// applyHitLocked applies damage and, on a kill, scores it and checks the
// win threshold.
func (r *Room) applyHitLocked(bl *Bullet, p *Player) {
	if !p.TakeDamage(HitDamage) {
		return
	}

	r.broadcastLocked(Envelope{T: MsgPlayerKilled, Data: KillMsg{
		KillerID:   bl.OwnerID,
		VictimID:   p.ID,
		KillerName: shortName(bl.OwnerID),
		VictimName: shortName(p.ID),
	}})

	b := r.battle
	if bl.OwnerTeam == TeamRed {
		b.Scores.Red++
	} else {
		b.Scores.Blue++
	}

	if b.Phase == PhasePlaying && b.Scores.ForTeam(bl.OwnerTeam) >= WinScore {
		b.EndMatch(bl.OwnerTeam)
		r.refreshMetaLocked()
		r.broadcastMatchEndedLocked()
	}
}

func (r *Room) broadcastMatchEndedLocked() {
	b := r.battle
	r.broadcastLocked(Envelope{T: MsgMatchEnded, Data: MatchEndedMsg{
		WinningTeam: string(b.WinningTeam),
		Scores:      ScoreState{Red: b.Scores.Red, Blue: b.Scores.Blue},
	}})
}

// broadcastLocked sends a JSON event to every client in the room.
func (r *Room) broadcastLocked(env Envelope) {
	for _, c := range r.clients {
		c.SendJSON(env)
	}
}

// broadcastStateLocked pushes the full msgpack state snapshot.
func (r *Room) broadcastStateLocked() {
	if len(r.clients) == 0 {
		return
	}
	data, err := encodeSnapshot(r.battle)
	if err != nil {
		log.Printf("room %s: snapshot encode: %v", r.ID, err)
		return
	}
	for _, c := range r.clients {
		c.SendBinary(data)
	}
}

// refreshMetaLocked recomputes the published room metadata.
func (r *Room) refreshMetaLocked() {
	r.meta = RoomInfo{
		ID:        r.ID,
		Name:      r.Name,
		Players:   len(r.battle.Players),
		RedCount:  r.battle.TeamCount(TeamRed),
		BlueCount: r.battle.TeamCount(TeamBlue),
		GameState: string(r.battle.Phase),
	}
}

// Meta returns the current published metadata.
func (r *Room) Meta() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meta
}

// PlayerCount returns the number of players in the room.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.battle.Players)
}

// encodeSnapshot marshals the replicated state tree as msgpack.
func encodeSnapshot(b *Battle) ([]byte, error) {
	snap := StateSnapshot{
		Players:     make([]PlayerState, 0, len(b.Players)),
		Bullets:     make([]BulletState, 0, len(b.Bullets)),
		Scores:      ScoreState{Red: b.Scores.Red, Blue: b.Scores.Blue},
		GameState:   string(b.Phase),
		WinningTeam: string(b.WinningTeam),
		GameTime:    b.GameTime,
	}
	for _, p := range b.Players {
		snap.Players = append(snap.Players, p.ToState())
	}
	for _, bl := range b.Bullets {
		snap.Bullets = append(snap.Bullets, bl.ToState())
	}
	return msgpack.Marshal(snap)
}
