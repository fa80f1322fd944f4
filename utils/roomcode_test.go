package utils

import (
	"strings"
	"testing"

	"quizarena/apperr"
)

func TestGenerateRoomCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateRoomCode()
		if len(code) != RoomCodeLength {
			t.Fatalf("expected %d chars, got %q", RoomCodeLength, code)
		}
		for _, r := range code {
			if !strings.ContainsRune(roomCodeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}

func TestUniqueRoomCodeRetries(t *testing.T) {
	calls := 0
	code, err := UniqueRoomCode(func(string) (bool, error) {
		calls++
		return calls < 3, nil // first two codes taken
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	if len(code) != RoomCodeLength {
		t.Errorf("unexpected code %q", code)
	}
}

func TestUniqueRoomCodeExhaustion(t *testing.T) {
	_, err := UniqueRoomCode(func(string) (bool, error) {
		return true, nil // every code taken
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected Conflict after exhaustion, got %v", err)
	}
}

func TestUniqueRoomCodePropagatesStoreError(t *testing.T) {
	storeErr := apperr.Unavailable("store down", nil)
	_, err := UniqueRoomCode(func(string) (bool, error) {
		return false, storeErr
	})
	if err != storeErr {
		t.Fatalf("expected store error back, got %v", err)
	}
}
