package consultation

import "errors"

var (
	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = errors.New("consultation.repository: consultation not found")

	// ErrSlotAlreadyUsed возвращается, когда на слот уже есть консультация (unique source_slot_id)
	ErrSlotAlreadyUsed = errors.New("consultation.repository: slot already has a consultation")

	// ErrNotPending возвращается, когда условное обновление статуса не затронуло строк
	ErrNotPending = errors.New("consultation.repository: consultation is not pending")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("consultation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("consultation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("consultation.repository: failed to scan row")
)
