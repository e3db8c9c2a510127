package middleware

const (
	msgInternal          = "Внутрішня помилка сервера"
	msgMissingAuth       = "Необхідна авторизація"
	msgInvalidAuthHeader = "Некоректний заголовок авторизації"
	msgInvalidToken      = "Недійсний токен"
	msgTokenExpired      = "Термін дії токена минув"
	msgForbidden         = "Недостатньо прав"
	msgTooManyRequests   = "Забагато запитів, спробуйте пізніше"
	msgMalformedBody     = "Некоректний формат запиту"
	msgBodyTooLarge      = "Розмір запиту перевищує допустимий"
)
