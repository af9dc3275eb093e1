package main

import "math"

// Arena dimensions in pixels. Shared with the client renderer.
const (
	ArenaWidth  = 3000.0
	ArenaHeight = 1536.0
)

// Rect is an axis-aligned box centered at (X, Y) with full width W and
// full height H.
type Rect struct {
	X, Y float64
	W, H float64
}

// Platform is a static arena platform.
type Platform struct {
	X, Y float64
	W, H float64
}

// Bullet rectangle used for platform tests. Matches the client sprite.
const (
	BulletRectW = 10.0
	BulletRectH = 6.0
)

// Platforms is the static arena layout: one full-width floor plus the
// elevated platforms. Loaded once, shared read-only by every room.
var Platforms = []Platform{
	// Floor
	{X: 1500, Y: 1504, W: 3000, H: 64},

	// Low row
	{X: 300, Y: 1320, W: 260, H: 32},
	{X: 900, Y: 1320, W: 260, H: 32},
	{X: 1500, Y: 1320, W: 260, H: 32},
	{X: 2100, Y: 1320, W: 260, H: 32},
	{X: 2700, Y: 1320, W: 260, H: 32},

	{X: 600, Y: 1140, W: 240, H: 32},
	{X: 1200, Y: 1140, W: 240, H: 32},
	{X: 1800, Y: 1140, W: 240, H: 32},
	{X: 2400, Y: 1140, W: 240, H: 32},

	// Mid rows
	{X: 300, Y: 960, W: 220, H: 32},
	{X: 900, Y: 960, W: 220, H: 32},
	{X: 1500, Y: 960, W: 220, H: 32},
	{X: 2100, Y: 960, W: 220, H: 32},
	{X: 2700, Y: 960, W: 220, H: 32},

	{X: 600, Y: 780, W: 220, H: 32},
	{X: 1200, Y: 780, W: 220, H: 32},
	{X: 1800, Y: 780, W: 220, H: 32},
	{X: 2400, Y: 780, W: 220, H: 32},

	// High rows
	{X: 300, Y: 600, W: 200, H: 32},
	{X: 950, Y: 600, W: 200, H: 32},
	{X: 1500, Y: 600, W: 200, H: 32},
	{X: 2050, Y: 600, W: 200, H: 32},
	{X: 2700, Y: 600, W: 200, H: 32},

	{X: 750, Y: 420, W: 180, H: 32},
	{X: 1500, Y: 420, W: 180, H: 32},
	{X: 2250, Y: 420, W: 180, H: 32},

	// Top perch
	{X: 1500, Y: 260, W: 320, H: 32},
}

// RectanglesOverlap reports whether two centered boxes overlap on both
// axes. Comparisons are strict: boxes that merely touch do not overlap.
func RectanglesOverlap(a, b Rect) bool {
	return math.Abs(a.X-b.X)*2 < a.W+b.W &&
		math.Abs(a.Y-b.Y)*2 < a.H+b.H
}

// PlatformContainingPoint returns the first platform (in list order) whose
// box contains the point, edges inclusive.
func PlatformContainingPoint(x, y float64, platforms []Platform) (Platform, bool) {
	for _, p := range platforms {
		if math.Abs(x-p.X)*2 <= p.W && math.Abs(y-p.Y)*2 <= p.H {
			return p, true
		}
	}
	return Platform{}, false
}

// PlatformHitByBullet treats the bullet as a small rectangle and returns the
// first platform it overlaps. The tick loop does not call this: bullets fly
// through platforms, only players block them.
func PlatformHitByBullet(b *Bullet, platforms []Platform) (Platform, bool) {
	br := Rect{X: b.X, Y: b.Y, W: BulletRectW, H: BulletRectH}
	for _, p := range platforms {
		if RectanglesOverlap(br, Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}) {
			return p, true
		}
	}
	return Platform{}, false
}
