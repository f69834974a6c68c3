package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/dialog"
	"github.com/Spok95/moneo-bot/internal/domain/budget"
	"github.com/Spok95/moneo-bot/internal/domain/ledger"
	"github.com/Spok95/moneo-bot/internal/domain/profile"
	"github.com/Spok95/moneo-bot/internal/domain/reconcile"
	"github.com/Spok95/moneo-bot/internal/domain/reflection"
	"github.com/Spok95/moneo-bot/internal/domain/subscriptions"
	"github.com/Spok95/moneo-bot/internal/domain/users"
)

// telegramClient — срез методов *tgbotapi.BotAPI, которыми пользуется бот.
type telegramClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type dialogStates interface {
	Get(ctx context.Context, chatID int64) (*dialog.Item, error)
	Set(ctx context.Context, chatID int64, state dialog.State, payload dialog.Payload) error
	Reset(ctx context.Context, chatID int64) error
}

type reflectionStore interface {
	Create(ctx context.Context, in reflection.CreateInput) (*reflection.Item, error)
	ListPending(ctx context.Context, userID int64) ([]reflection.Item, error)
	ListExpired(ctx context.Context, now time.Time) ([]reflection.ExpiredItem, error)
	Resolve(ctx context.Context, id int64, decision reflection.Status) error
}

type profileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*profile.Profile, error)
	Upsert(ctx context.Context, in profile.UpsertInput) (*profile.Profile, error)
	UpdateIncome(ctx context.Context, userID int64, income float64) error
}

type Bot struct {
	api    telegramClient
	log    *slog.Logger
	users  *users.Repo
	states dialogStates

	profiles    profileStore
	ledger      *ledger.Repo
	subs        *subscriptions.Repo
	reflections reflectionStore

	budget *budget.Service
	rec    *reconcile.Reconciler

	// Обратные отсчёты по чатам; останавливаются при решении и при
	// завершении контекста.
	countdownMu sync.Mutex
	countdowns  map[int64]*countdown
	tick        time.Duration

	now func() time.Time
}

// countdown — регистрация одного обратного отсчёта; указатель служит
// маркером поколения, чтобы вытесненный отсчёт не гасил преемника.
type countdown struct {
	cancel context.CancelFunc
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	usersRepo *users.Repo, statesRepo *dialog.Repo,
	profilesRepo *profile.Repo, ledgerRepo *ledger.Repo,
	subsRepo *subscriptions.Repo, reflectionsRepo *reflection.Repo,
	budgetSvc *budget.Service, rec *reconcile.Reconciler,
	tick time.Duration) *Bot {

	return &Bot{
		api: api, log: log, users: usersRepo, states: statesRepo,
		profiles: profilesRepo, ledger: ledgerRepo,
		subs: subsRepo, reflections: reflectionsRepo,
		budget: budgetSvc, rec: rec,
		countdowns: map[int64]*countdown{},
		tick:       tick,
		now:        time.Now,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.stopAllCountdowns()
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	b.handleCallback(ctx, upd.CallbackQuery)
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

// currentUser — пользователь по Telegram-id отправителя; nil, если /start ещё не был.
func (b *Bot) currentUser(ctx context.Context, tgID int64) *users.User {
	u, err := b.users.GetByTelegramID(ctx, tgID)
	if err != nil {
		b.log.Error("load user failed", "tg_id", tgID, "err", err)
		return nil
	}
	return u
}
