package main

import (
	"fmt"
	"log"
	"math"
	"time"
)

const (
	BulletSpeed       = 700.0  // px/s, informational; velocity comes from the shoot payload
	BulletLifetimeMs  = 3000.0 // ms before a bullet expires
	MinFireIntervalMs = 200.0  // shared with clients, not enforced server-side
	OffscreenMargin   = 100.0  // px beyond the arena edge before removal
)

// Bullet is a live projectile. Horizontal motion only. The owner team is
// captured at fire time and never changes.
type Bullet struct {
	ID        string
	X, Y      float64
	VelocityX float64
	OwnerID   string
	OwnerTeam Team
}

// NewBullet creates a bullet from a shoot payload. Any NaN numeric input is
// replaced with 0 so a malformed client payload can never push a
// non-numeric value into replicated state; the anomaly is logged and the
// request proceeds.
func NewBullet(id string, x, y, vx float64, ownerID string, ownerTeam Team) *Bullet {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(vx) {
		log.Printf("bullet %s: NaN in shoot payload from %s, zeroing", id, ownerID)
		if math.IsNaN(x) {
			x = 0
		}
		if math.IsNaN(y) {
			y = 0
		}
		if math.IsNaN(vx) {
			vx = 0
		}
	}
	return &Bullet{
		ID:        id,
		X:         x,
		Y:         y,
		VelocityX: vx,
		OwnerID:   ownerID,
		OwnerTeam: ownerTeam,
	}
}

// bulletID builds an id from the owner session id and the creation time.
// Unique enough to disambiguate within a bullet's 3 second lifetime.
func bulletID(ownerID string) string {
	return fmt.Sprintf("%s-%d", ownerID, time.Now().UnixMilli())
}

// Offscreen reports whether the bullet has left the horizontal arena
// bounds, including the off-screen margin on both sides.
func (b *Bullet) Offscreen() bool {
	return b.X < -OffscreenMargin || b.X > ArenaWidth+OffscreenMargin
}

// ToState converts to the replicated wire form.
func (b *Bullet) ToState() BulletState {
	return BulletState{
		ID:        b.ID,
		X:         b.X,
		Y:         b.Y,
		VelocityX: b.VelocityX,
		OwnerID:   b.OwnerID,
		OwnerTeam: string(b.OwnerTeam),
	}
}
