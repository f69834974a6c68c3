package bot

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/dialog"
	"github.com/Spok95/moneo-bot/internal/domain/profile"
	"github.com/Spok95/moneo-bot/internal/domain/reflection"
)

type fakeAPI struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	sendErr error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return nil }

func (f *fakeAPI) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeStates гоняет payload через JSON, как настоящий репозиторий:
// числа после round-trip приходят как float64.
type fakeStates struct {
	mu    sync.Mutex
	items map[int64]*dialog.Item
}

func newFakeStates() *fakeStates { return &fakeStates{items: map[int64]*dialog.Item{}} }

func (f *fakeStates) Get(_ context.Context, chatID int64) (*dialog.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it, ok := f.items[chatID]; ok {
		return it, nil
	}
	return &dialog.Item{ChatID: chatID, State: dialog.StateIdle, Payload: dialog.Payload{}}, nil
}

func (f *fakeStates) Set(_ context.Context, chatID int64, state dialog.State, payload dialog.Payload) error {
	raw, _ := json.Marshal(payload)
	var p dialog.Payload
	_ = json.Unmarshal(raw, &p)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[chatID] = &dialog.Item{ChatID: chatID, State: state, Payload: p}
	return nil
}

func (f *fakeStates) Reset(_ context.Context, chatID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, chatID)
	return nil
}

type fakeReflections struct {
	pending []reflection.Item
	expired []reflection.ExpiredItem
}

func (f *fakeReflections) Create(_ context.Context, in reflection.CreateInput) (*reflection.Item, error) {
	return &reflection.Item{UserID: in.UserID, Name: in.Name, Cost: in.Cost, DurationMin: in.DurationMin}, nil
}

func (f *fakeReflections) ListPending(_ context.Context, _ int64) ([]reflection.Item, error) {
	return f.pending, nil
}

func (f *fakeReflections) ListExpired(_ context.Context, _ time.Time) ([]reflection.ExpiredItem, error) {
	return f.expired, nil
}

func (f *fakeReflections) Resolve(_ context.Context, _ int64, _ reflection.Status) error {
	return nil
}

type fakeProfiles struct {
	upserts []profile.UpsertInput
}

func (f *fakeProfiles) GetByUserID(context.Context, int64) (*profile.Profile, error) {
	return nil, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, in profile.UpsertInput) (*profile.Profile, error) {
	f.upserts = append(f.upserts, in)
	return &profile.Profile{
		UserID:         in.UserID,
		MonthlyIncome:  in.MonthlyIncome,
		KnowledgeScore: in.KnowledgeScore,
	}, nil
}

func (f *fakeProfiles) UpdateIncome(context.Context, int64, float64) error { return nil }

func newTestBot(api telegramClient, states dialogStates, refl reflectionStore, profiles profileStore) *Bot {
	return &Bot{
		api:         api,
		log:         slog.New(slog.DiscardHandler),
		states:      states,
		reflections: refl,
		profiles:    profiles,
		countdowns:  map[int64]*countdown{},
		tick:        time.Hour,
		now:         time.Now,
	}
}

func callback(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: chatID}},
	}
}
