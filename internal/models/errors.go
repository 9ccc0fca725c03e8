package models

import "errors"

// Application-wide standard errors
var (
	// Invoke validation errors (user-caused, mapped to BadRequest)
	ErrMissingValue   = errors.New("missing value property")
	ErrMalformedValue = errors.New("value property is not properly formed")
	ErrMissingAction  = errors.New("missing action property")

	// Semantic mismatch errors (reported, never retried)
	ErrNotSupported    = errors.New("action type is not supported")
	ErrUnsupportedVerb = errors.New("unsupported action verb")

	// ErrUnknownCard - номер карточки не входит в пять фиксированных значений.
	// Для клиента это BadRequest, но в логах фиксируется как дефект каталога.
	ErrUnknownCard = errors.New("unknown card number")

	// ErrMalformedTemplate - ресурс карточки не парсится. Дефект сборки, не ошибка пользователя.
	ErrMalformedTemplate = errors.New("card template is malformed")

	// Storage errors
	ErrIncompleteOrder = errors.New("order is missing entre or drink")
	ErrPersistence     = errors.New("order storage unavailable")
	ErrSessionState    = errors.New("session state storage unavailable")
)
