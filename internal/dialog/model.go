package dialog

type State string

const (
	StateIdle State = "idle"

	// Онбординг
	StateOnbIncome     State = "onb_income"
	StateOnbGoal       State = "onb_goal"
	StateOnbQuizFund   State = "onb_quiz_fund"   // вопрос про подушку (кнопки)
	StateOnbQuizCredit State = "onb_quiz_credit" // вопрос про рейтинг (кнопки)
	StateOnbSituation  State = "onb_situation"

	// Добавление операции
	StateTxType     State = "tx_type"     // доход/расход (кнопки)
	StateTxCategory State = "tx_category" // выбор категории (кнопки)
	StateTxAmount   State = "tx_amount"   // ввод суммы
	StateTxDesc     State = "tx_desc"     // комментарий или «пропустить»

	// Подписки
	StateSubName  State = "sub_name"
	StateSubCost  State = "sub_cost"
	StateSubCycle State = "sub_cycle" // период оплаты (кнопки)

	// Отложенные покупки
	StateReflName     State = "refl_name"
	StateReflCost     State = "refl_cost"
	StateReflDuration State = "refl_duration" // срок ожидания в минутах
	StateReflDecide   State = "refl_decide"   // ждём решения купить/пропустить

	// Обновление дохода
	StateIncomeAmount State = "income_amount"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
