package handlers

// User-facing message templates, Markdown parse mode.
const (
	msgWelcome = "👋 *Welcome to your AI Expense Tracker!* 📊\n\n" +
		"I help you track your spending effortlessly.\n\n" +
		"*1. Record an Expense:*\n" +
		"   - 📸 *Upload* any photo of a bill or receipt.\n" +
		"   - 💬 *Type* in natural language (e.g., `220 pizza`, `paid 1500 for flight ticket`).\n\n" +
		"*2. Get Reports:*\n" +
		"   - /daily: See today's spending.\n" +
		"   - /week: See this week's spending.\n" +
		"   - /month: See this month's spending.\n"

	msgFileTooLarge = "❌ *File Too Large!* The uploaded file size (%.2f MB) exceeds the limit of %d MB. Please send a smaller file."

	msgTextTooLong = "❌ *Text Too Long!* Your input has %d characters, exceeding the limit of %d. Please summarize your expense details."

	msgCaptionTooLong = "❌ *Caption Too Long!* Your caption has %d characters, exceeding the limit of %d. Please shorten your description."

	msgInputError = "*Input Error*: Please send a bill image or write your expense (e.g., '150 food pizza')."

	msgDownloadError = "⚠️ *File Download Error*: Could not retrieve the file from Telegram. Please try sending it again."

	msgExtractionFailed = "*Extraction Failed!* 😭\n_Details_: %s"

	msgSaveError = "⚠️ *Save Error*: Could not save your expense. Please try again."

	msgReportError = "⚠️ *Report Error*: Failed to fetch your expenses. Please try again."

	msgNoExpenses = "😔 No expenses found for the *%s* period."

	msgExpenseSaved = "✅ *Expense Saved!*\n\n" +
		"*Category*: `%s`\n" +
		"*Amount*: ₹`%s`\n" +
		"*Description*: `%s`"
)
