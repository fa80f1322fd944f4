package utils

import (
	"math/rand"

	"quizarena/apperr"
)

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// RoomCodeLength is the fixed length of every room code.
	RoomCodeLength = 6

	// maxRoomCodeAttempts bounds the uniqueness retry loop. With 36^6
	// possible codes this only trips when the store is lying.
	maxRoomCodeAttempts = 25
)

// GenerateRoomCode returns a random uppercase-alphanumeric code.
func GenerateRoomCode() string {
	code := make([]byte, RoomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(code)
}

// UniqueRoomCode generates codes until existsFn reports one unused.
// Codes only need to be unique among duels still waiting for an opponent,
// which is what existsFn is expected to check.
func UniqueRoomCode(existsFn func(code string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxRoomCodeAttempts; attempt++ {
		code := GenerateRoomCode()
		exists, err := existsFn(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperr.Conflict("could not allocate a free room code")
}
