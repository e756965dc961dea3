package telegram

// User-facing strings. The bot answers in Russian, matching the group it
// serves.
const (
	getSummaryButton = "🚀 Get summary"
	cancelButton     = "Cancel"

	welcomeMessage = "Привет, %s! Добро пожаловать.\nНажмите «🚀 Get summary», чтобы получить сводку."
	helpMessage    = "Доступные команды:\n" +
		"/start - запустить бота\n" +
		"/help - помощь\n\n" +
		"Чтобы получить сводку последних обсуждений, используйте кнопку «🚀 Get summary»."

	requestCountMessage  = "Сколько сообщений вы хотите обобщить?"
	cancelledMessage     = "Запрос отменен."
	mainMenuMessage      = "Главное меню:"
	newRequestMessage    = "Используйте кнопку внизу для нового запроса:"
	rateLimitMessage     = "Превышен лимит запросов. Пожалуйста, подождите минуту и попробуйте снова."
	noMessagesMessage    = "Сообщения для обобщения не найдены."
	noResponseMessage    = "Сервис обобщения не вернул ответа. Пожалуйста, попробуйте позже."
	processingErrMessage = "Произошла ошибка при обработке вашего запроса. Пожалуйста, попробуйте еще раз."

	summaryPrefix = "Ключевые обсуждения:\n\n"

	positiveNumberError = "Пожалуйста, введите положительное число."
	invalidInputError   = "Пожалуйста, введите действительное число."
	overLimitError      = "Максимум %d сообщений. Пожалуйста, введите меньшее количество."
)
