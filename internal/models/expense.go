package models

// TimeLayout is the fixed-width ISO-8601 layout used for every stored timestamp
// and every query bound. Microseconds are zero-padded; a trimming layout such as
// .999999 would break the lexical ordering the store relies on.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// Categories the extraction service may return. CategoryError is the sentinel
// for a failed extraction and is never persisted.
const (
	CategoryFood         = "Food"
	CategoryTravel       = "Travel"
	CategoryStudy        = "Study"
	CategoryShopping     = "Shopping"
	CategoryUtility      = "Utility"
	CategorySubscription = "Subscription"
	CategoryOther        = "Other"
	CategoryError        = "ERROR"
)

// Categories lists the closed vocabulary of persistable categories.
var Categories = []string{
	CategoryFood,
	CategoryTravel,
	CategoryStudy,
	CategoryShopping,
	CategoryUtility,
	CategorySubscription,
	CategoryOther,
}

// NormalizeCategory clamps a model-produced category to the closed vocabulary.
// Anything outside it (the model is best-effort) becomes Other.
func NormalizeCategory(category string) string {
	for _, c := range Categories {
		if category == c {
			return c
		}
	}
	return CategoryOther
}

// Expense represents one stored expense record. Records are immutable after
// creation and scoped to the owning Telegram user.
type Expense struct {
	ID          string  `bson:"_id" json:"id"`
	UserID      int64   `bson:"telegram_user_id" json:"telegramUserId"`
	Category    string  `bson:"category" json:"category"`
	Description string  `bson:"description" json:"description"`
	Amount      float64 `bson:"amount" json:"amount"`
	CreatedAt   string  `bson:"created_at" json:"createdAt"`
}
