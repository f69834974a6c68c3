package bot

import (
	"context"
	"testing"
	"time"
)

func countdownRegistered(b *Bot, chatID int64) bool {
	b.countdownMu.Lock()
	defer b.countdownMu.Unlock()
	_, ok := b.countdowns[chatID]
	return ok
}

func TestCountdownRestartKeepsLatest(t *testing.T) {
	b := newTestBot(&fakeAPI{}, newFakeStates(), &fakeReflections{}, &fakeProfiles{})
	ctx := context.Background()
	const chatID = int64(42)

	b.startCountdown(ctx, chatID, 7, 1)
	// Перезапуск для того же чата вытесняет первый отсчёт.
	b.startCountdown(ctx, chatID, 7, 2)

	// Даём вытесненной горутине проснуться на своей отмене: её завершение
	// не должно снимать регистрацию преемника.
	time.Sleep(100 * time.Millisecond)
	if !countdownRegistered(b, chatID) {
		t.Fatal("restarting a countdown must keep the fresh one registered")
	}

	b.stopCountdown(chatID)
	time.Sleep(50 * time.Millisecond)
	if countdownRegistered(b, chatID) {
		t.Fatal("stopCountdown must drop the registration")
	}
}

func TestStopAllCountdowns(t *testing.T) {
	b := newTestBot(&fakeAPI{}, newFakeStates(), &fakeReflections{}, &fakeProfiles{})
	ctx := context.Background()

	b.startCountdown(ctx, 1, 7, 1)
	b.startCountdown(ctx, 2, 8, 1)
	b.stopAllCountdowns()

	if countdownRegistered(b, 1) || countdownRegistered(b, 2) {
		t.Fatal("stopAllCountdowns must drop every registration")
	}
}
