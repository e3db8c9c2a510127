package service

// User-facing messages
const (
	msgInvalidData = "Некоректні дані"
	msgTryLater    = "Сервіс тимчасово недоступний, спробуйте пізніше"

	msgProductCreated      = "Товар успішно створено"
	msgProductCreateFailed = "Помилка при створенні товару"
	msgProductUpdated      = "Товар успішно оновлено"
	msgProductUpdateFailed = "Не вдалося оновити товар"
	msgProductDeleted      = "Товар видалено"
	msgProductDeleteFailed = "Не вдалося видалити"
	msgProductRestored     = "Товар відновлено"
	msgProductRestoreFail  = "Не вдалося відновити"
	msgProductNotFound     = "Такий продукт більше не існує"
	msgProductLoaded       = "Товар завантажено"
	msgProductsLoaded      = "Products loaded"
	msgProductsLoadFailed  = "Не вдалося завантажити товари"
	msgCategoryNotFound    = "Категорію не знайдено"

	msgImageUploaded     = "Зображення успішно завантажено"
	msgImageUploadFailed = "Не вдалося завантажити зображення"

	msgCategoryCreated       = "Категорію створено"
	msgCategoryCreateFailed  = "Не вдалося створити категорію"
	msgCategoryAlreadyExists = "Категорія з такою назвою вже існує"
	msgCategoriesLoaded      = "Categories loaded"

	msgRegistered          = "Користувача зареєстровано"
	msgRegisterFailed      = "Не вдалося зареєструвати користувача"
	msgUserAlreadyExists   = "Користувач з такою поштою вже існує"
	msgLoggedIn            = "Вхід виконано"
	msgInvalidCredentials  = "Невірна пошта або пароль"
	msgTokenRefreshed      = "Токен оновлено"
	msgInvalidToken        = "Недійсний токен"
	msgLoggedOut           = "Вихід виконано"
	msgProfileLoaded       = "Профіль завантажено"
	msgUserNotFound        = "Користувача не знайдено"
	msgAuthenticationError = "Помилка автентифікації"
)
