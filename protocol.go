package main

import "encoding/json"

// Client -> Server message types
const (
	MsgCreate = "create"
	MsgJoin   = "join"
	MsgLeave  = "leave"
	MsgList   = "list"
	MsgCheck  = "check"
	MsgMove   = "move"
	MsgDash   = "dash"
	MsgShoot  = "shoot"
)

// Server -> Client message types
const (
	MsgCreated      = "created"
	MsgJoined       = "joined"
	MsgRooms        = "rooms"
	MsgChecked      = "checked"
	MsgError        = "error"
	MsgTeamAssigned = "team-assigned"
	MsgPlayerKilled = "player-killed"
	MsgMatchEnded   = "match-ended"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// MoveMsg overwrites the sender's position, velocity and facing verbatim.
// The server trusts the reported values; there is no server-side physics
// validation.
type MoveMsg struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
	FlipX     bool    `json:"flipX"`
}

// DashMsg toggles the sender's dashing flag.
type DashMsg struct {
	IsDashing bool `json:"isDashing"`
}

// ShootMsg spawns a bullet at the reported position and velocity.
type ShootMsg struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VelocityX float64 `json:"velocityX"`
}

// CreateMsg asks for a new room.
type CreateMsg struct {
	Name     string `json:"name"`
	RoomName string `json:"rname"`
}

// JoinMsg asks to join an existing room.
type JoinMsg struct {
	Name   string `json:"name"`
	RoomID string `json:"rid"`
}

// CheckMsg asks whether a room exists.
type CheckMsg struct {
	RoomID string `json:"rid"`
}

// CheckedMsg is the response to a room check.
type CheckedMsg struct {
	RoomID  string `json:"rid"`
	Exists  bool   `json:"exists"`
	Name    string `json:"name,omitempty"`
	Players int    `json:"players,omitempty"`
}

// TeamAssignedMsg is sent to the joining client only.
type TeamAssignedMsg struct {
	Team     string `json:"team"`
	PlayerID string `json:"playerId"`
	RoomID   string `json:"roomId"`
}

// KillMsg is broadcast to every client in the room on a kill.
type KillMsg struct {
	KillerID   string `json:"killerId"`
	VictimID   string `json:"victimId"`
	KillerName string `json:"killerName"`
	VictimName string `json:"victimName"`
}

// MatchEndedMsg is broadcast once when the match ends.
type MatchEndedMsg struct {
	WinningTeam string     `json:"winningTeam"`
	Scores      ScoreState `json:"scores"`
}

// ErrorMsg sends an error to a client.
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// RoomInfo is the published room metadata, refreshed after every
// join/leave and at match end.
type RoomInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Players   int    `json:"players"`
	RedCount  int    `json:"redCount"`
	BlueCount int    `json:"blueCount"`
	GameState string `json:"gameState"`
}

// PlayerState is the replicated per-player state.
type PlayerState struct {
	ID        string  `json:"id" msgpack:"id"`
	Name      string  `json:"n" msgpack:"n"`
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	VX        float64 `json:"vx" msgpack:"vx"`
	VY        float64 `json:"vy" msgpack:"vy"`
	Health    int     `json:"hp" msgpack:"hp"`
	Team      string  `json:"t" msgpack:"t"`
	IsDashing bool    `json:"ds" msgpack:"ds"`
	FlipX     bool    `json:"f" msgpack:"f"`
	IsDead    bool    `json:"d" msgpack:"d"`
}

// BulletState is the replicated per-bullet state.
type BulletState struct {
	ID        string  `json:"id" msgpack:"id"`
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	VelocityX float64 `json:"vx" msgpack:"vx"`
	OwnerID   string  `json:"o" msgpack:"o"`
	OwnerTeam string  `json:"ot" msgpack:"ot"`
}

// ScoreState is the replicated score pair.
type ScoreState struct {
	Red  int `json:"red" msgpack:"r"`
	Blue int `json:"blue" msgpack:"b"`
}

// StateSnapshot is the full room state pushed to every client each tick as
// a msgpack binary frame.
type StateSnapshot struct {
	Players     []PlayerState `json:"p" msgpack:"p"`
	Bullets     []BulletState `json:"b" msgpack:"b"`
	Scores      ScoreState    `json:"s" msgpack:"s"`
	GameState   string        `json:"g" msgpack:"g"`
	WinningTeam string        `json:"w" msgpack:"w"`
	GameTime    float64       `json:"gt" msgpack:"gt"`
}
