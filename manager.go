package main

import (
	"sync"

	"github.com/google/uuid"
)

const maxRooms = 100

// RoomManager handles creation and lookup of rooms.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRoomManager creates an empty RoomManager.
func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom starts a new room and its simulation loop. Returns nil if the
// room limit is reached.
func (rm *RoomManager) CreateRoom(name string) *Room {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if len(rm.rooms) >= maxRooms {
		return nil
	}
	room := NewRoom(uuid.NewString(), name)
	rm.rooms[room.ID] = room
	go room.Run()
	return room
}

// GetRoom returns a room by ID.
func (rm *RoomManager) GetRoom(id string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[id]
}

// RemovePlayer removes a player from a room, tearing the room down when
// its last player leaves.
func (rm *RoomManager) RemovePlayer(roomID, playerID string) {
	rm.mu.RLock()
	room, ok := rm.rooms[roomID]
	rm.mu.RUnlock()
	if !ok {
		return
	}
	room.Leave(playerID)

	if room.PlayerCount() == 0 {
		room.Stop()
		rm.mu.Lock()
		delete(rm.rooms, roomID)
		rm.mu.Unlock()
	}
}

// ListRooms returns the published metadata of every active room.
func (rm *RoomManager) ListRooms() []RoomInfo {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	list := make([]RoomInfo, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		list = append(list, room.Meta())
	}
	return list
}
