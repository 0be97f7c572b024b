package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Стабильные коды ошибок публичного и админского API
const (
	// Системные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Общие ошибки бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"

	// Каталог
	CodeDuplicateVariation ErrorCode = "DUPLICATE_VARIATION"

	// Доступ
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeForbiddenOrigin ErrorCode = "FORBIDDEN_ORIGIN"
)
