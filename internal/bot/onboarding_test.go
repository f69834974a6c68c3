package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/dialog"
)

func TestOnboardingKnowledgeScore(t *testing.T) {
	api := &fakeAPI{}
	states := newFakeStates()
	profiles := &fakeProfiles{}
	b := newTestBot(api, states, &fakeReflections{}, profiles)
	ctx := context.Background()
	const chatID, userID = int64(10), int64(7)

	_ = states.Set(ctx, chatID, dialog.StateOnbGoal, dialog.Payload{"income": 50000.0})

	b.handleOnboardingCallback(ctx, callback(chatID, "onb:goal:invest"), userID)
	st, _ := states.Get(ctx, chatID)
	if st.State != dialog.StateOnbQuizFund {
		t.Fatalf("after goal: state = %s, want %s", st.State, dialog.StateOnbQuizFund)
	}

	// Первый вопрос верно, второй мимо: счёт должен стать 1.
	b.handleOnboardingCallback(ctx, callback(chatID, "onb:quiz1:3_6"), userID)
	st, _ = states.Get(ctx, chatID)
	if st.State != dialog.StateOnbQuizCredit {
		t.Fatalf("after quiz 1: state = %s, want %s", st.State, dialog.StateOnbQuizCredit)
	}

	b.handleOnboardingCallback(ctx, callback(chatID, "onb:quiz2:cards"), userID)
	st, _ = states.Get(ctx, chatID)
	if st.State != dialog.StateOnbSituation {
		t.Fatalf("after quiz 2: state = %s, want %s", st.State, dialog.StateOnbSituation)
	}

	msg := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: "всё стабильно"}
	b.handleOnboardingInput(ctx, msg, userID, st)

	if len(profiles.upserts) != 1 {
		t.Fatalf("profile upserts = %d, want 1", len(profiles.upserts))
	}
	got := profiles.upserts[0]
	if got.KnowledgeScore != 1 {
		t.Errorf("KnowledgeScore = %d, want 1", got.KnowledgeScore)
	}
	if got.MonthlyIncome != 50000 {
		t.Errorf("MonthlyIncome = %v, want 50000", got.MonthlyIncome)
	}
	if got.PrimaryGoal != "invest" || got.FinancialSituation != "всё стабильно" {
		t.Errorf("goal/situation = %q/%q", got.PrimaryGoal, got.FinancialSituation)
	}
}

func TestOnboardingBothAnswersCorrect(t *testing.T) {
	states := newFakeStates()
	profiles := &fakeProfiles{}
	b := newTestBot(&fakeAPI{}, states, &fakeReflections{}, profiles)
	ctx := context.Background()
	const chatID, userID = int64(10), int64(7)

	_ = states.Set(ctx, chatID, dialog.StateOnbGoal, dialog.Payload{"income": 1000.0})
	b.handleOnboardingCallback(ctx, callback(chatID, "onb:goal:control"), userID)
	b.handleOnboardingCallback(ctx, callback(chatID, "onb:quiz1:3_6"), userID)
	b.handleOnboardingCallback(ctx, callback(chatID, "onb:quiz2:history"), userID)

	st, _ := states.Get(ctx, chatID)
	b.handleOnboardingInput(ctx, &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: "ок"}, userID, st)

	if len(profiles.upserts) != 1 || profiles.upserts[0].KnowledgeScore != 2 {
		t.Fatalf("upserts = %+v, want single profile with score 2", profiles.upserts)
	}
}
