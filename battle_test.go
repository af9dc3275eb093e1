package main

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func TestBattleAddPlayerAutoBalance(t *testing.T) {
	b := NewBattle()

	p1 := b.AddPlayer("a", "")
	if p1.Team != TeamRed {
		t.Errorf("first player should go red (tie favors red), got %s", p1.Team)
	}
	p2 := b.AddPlayer("b", "")
	if p2.Team != TeamBlue {
		t.Errorf("second player should go blue, got %s", p2.Team)
	}
	p3 := b.AddPlayer("c", "")
	if p3.Team != TeamRed {
		t.Errorf("third player should go red, got %s", p3.Team)
	}
	p4 := b.AddPlayer("d", "")
	if p4.Team != TeamBlue {
		t.Errorf("fourth player should go blue, got %s", p4.Team)
	}
}

func TestBattlePhaseStartsAtTwoPlayers(t *testing.T) {
	b := NewBattle()
	b.AddPlayer("a", "")
	if b.Phase != PhaseWaiting {
		t.Errorf("one player should still be waiting, got %s", b.Phase)
	}
	b.AddPlayer("b", "")
	if b.Phase != PhasePlaying {
		t.Errorf("two players should start the match, got %s", b.Phase)
	}
}

func TestBattleRemovePlayerForfeit(t *testing.T) {
	b := NewBattle()
	b.AddPlayer("red1", "")
	b.AddPlayer("blue1", "")
	if b.Phase != PhasePlaying {
		t.Fatalf("match should be playing, got %s", b.Phase)
	}

	// The last blue player leaves mid-match: red wins immediately
	b.RemovePlayer("blue1")
	if b.Phase != PhaseEnded {
		t.Errorf("emptying a team should end the match, got %s", b.Phase)
	}
	if b.WinningTeam != TeamRed {
		t.Errorf("remaining team should win, got %q", b.WinningTeam)
	}
}

func TestBattleRemovePlayerWhileWaiting(t *testing.T) {
	b := NewBattle()
	b.AddPlayer("a", "")
	b.RemovePlayer("a")
	if b.Phase != PhaseWaiting {
		t.Errorf("leaving before the match starts should not end anything, got %s", b.Phase)
	}
	if b.WinningTeam != "" {
		t.Errorf("no winner expected, got %q", b.WinningTeam)
	}
}

func TestBattleRemoveUnknownPlayer(t *testing.T) {
	b := NewBattle()
	b.RemovePlayer("ghost") // silent no-op
	if len(b.Players) != 0 {
		t.Error("unexpected player")
	}
}

func TestBattleRemoveBulletIdempotent(t *testing.T) {
	b := NewBattle()
	b.AddBullet(&Bullet{ID: "x"})
	b.AddBullet(&Bullet{ID: "y"})

	if !b.RemoveBullet("x") {
		t.Error("first removal should report true")
	}
	if b.RemoveBullet("x") {
		t.Error("second removal of the same id should be a no-op")
	}
	if b.RemoveBullet("never-existed") {
		t.Error("removing an unknown id should be a no-op")
	}
	if len(b.Bullets) != 1 || b.Bullets[0].ID != "y" {
		t.Errorf("expected only bullet y to remain, got %d", len(b.Bullets))
	}
}

func TestBattleEndMatchMonotonic(t *testing.T) {
	b := NewBattle()
	b.AddPlayer("a", "")
	b.AddPlayer("b", "")
	b.EndMatch(TeamRed)
	if b.Phase != PhaseEnded || b.WinningTeam != TeamRed {
		t.Fatalf("expected ended/red, got %s/%q", b.Phase, b.WinningTeam)
	}

	// Once ended, the winner is immutable
	b.EndMatch(TeamBlue)
	if b.WinningTeam != TeamRed {
		t.Errorf("winner must not be rewritten, got %q", b.WinningTeam)
	}

	// Joins after the end do not restart the match
	b.AddPlayer("c", "")
	if b.Phase != PhaseEnded {
		t.Errorf("phase must not revert, got %s", b.Phase)
	}
}

// Team counts differ by at most one after every join, for any join sequence.
func TestBattleBalanceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := NewBattle()
		n := rapid.IntRange(0, MaxPlayersPerRoom).Draw(t, "joins")
		for i := 0; i < n; i++ {
			b.AddPlayer(fmt.Sprintf("p%d", i), "")
			diff := b.TeamCount(TeamRed) - b.TeamCount(TeamBlue)
			if diff < 0 {
				diff = -diff
			}
			if diff > 1 {
				t.Fatalf("team counts diverged by %d after join %d", diff, i+1)
			}
		}
	})
}

// Health stays in [0,100] and IsDead holds exactly when health is 0, for
// any sequence of hits and respawns.
func TestPlayerHealthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewPlayer("p", TeamRed, "")
		ops := rapid.SliceOfN(rapid.IntRange(0, 1), 0, 40).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				p.TakeDamage(HitDamage)
			case 1:
				if p.IsDead {
					p.Respawn()
				}
			}
			if p.Health < 0 || p.Health > PlayerMaxHealth {
				t.Fatalf("health out of bounds: %d", p.Health)
			}
			if p.IsDead != (p.Health == 0) {
				t.Fatalf("dead flag %v inconsistent with health %d", p.IsDead, p.Health)
			}
		}
	})
}

func TestBattleTeamScans(t *testing.T) {
	b := NewBattle()
	for i := 0; i < 5; i++ {
		b.AddPlayer(fmt.Sprintf("p%d", i), "")
	}
	if got := b.TeamCount(TeamRed); got != 3 {
		t.Errorf("expected 3 red, got %d", got)
	}
	if got := b.TeamCount(TeamBlue); got != 2 {
		t.Errorf("expected 2 blue, got %d", got)
	}
	if got := len(b.PlayersInTeam(TeamRed)); got != 3 {
		t.Errorf("expected 3 red players, got %d", got)
	}
}
