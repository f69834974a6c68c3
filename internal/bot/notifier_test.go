package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/Spok95/moneo-bot/internal/dialog"
	"github.com/Spok95/moneo-bot/internal/domain/reflection"
)

func expiredItem(chatID int64) reflection.ExpiredItem {
	return reflection.ExpiredItem{
		Item:   reflection.Item{ID: 5, UserID: 7, Name: "Наушники", Cost: 3000, DurationMin: 30},
		ChatID: chatID,
	}
}

func TestNotifyExpiredSendFailureLeavesChatRetryable(t *testing.T) {
	api := &fakeAPI{sendErr: errors.New("telegram down")}
	states := newFakeStates()
	refl := &fakeReflections{expired: []reflection.ExpiredItem{expiredItem(42)}}
	b := newTestBot(api, states, refl, &fakeProfiles{})
	ctx := context.Background()

	b.notifyExpired(ctx)

	// Клавиатура не дошла — чат не должен застрять в refl_decide.
	st, _ := states.Get(ctx, 42)
	if st.State != dialog.StateIdle {
		t.Fatalf("after failed send state = %s, want idle", st.State)
	}

	// Доставка восстановилась: следующий проход доводит дело до конца.
	api.sendErr = nil
	b.notifyExpired(ctx)

	st, _ = states.Get(ctx, 42)
	if st.State != dialog.StateReflDecide {
		t.Fatalf("after successful send state = %s, want %s", st.State, dialog.StateReflDecide)
	}
	if id, ok := dialog.GetInt64(st.Payload, "item_id"); !ok || id != 5 {
		t.Fatalf("payload item_id = %d (ok=%v), want 5", id, ok)
	}
	if api.sentCount() != 1 {
		t.Fatalf("sent = %d, want exactly one decide prompt", api.sentCount())
	}
}

func TestNotifyExpiredSkipsBusyChat(t *testing.T) {
	api := &fakeAPI{}
	states := newFakeStates()
	_ = states.Set(context.Background(), 42, dialog.StateTxAmount, dialog.Payload{})
	refl := &fakeReflections{expired: []reflection.ExpiredItem{expiredItem(42)}}
	b := newTestBot(api, states, refl, &fakeProfiles{})

	b.notifyExpired(context.Background())

	if api.sentCount() != 0 {
		t.Fatal("a chat in the middle of a dialog must not be interrupted")
	}
	st, _ := states.Get(context.Background(), 42)
	if st.State != dialog.StateTxAmount {
		t.Fatalf("state = %s, want untouched tx_amount", st.State)
	}
}
