package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrStatusConflict возвращается, когда статус записи не допускает переход
	// (например, запись отменили параллельно)
	ErrStatusConflict = errors.New("appointment.repository: appointment status does not allow transition")

	// ErrLockOutsideTransaction возвращается при попытке взять advisory lock вне транзакции
	ErrLockOutsideTransaction = errors.New("appointment.repository: hour window lock requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
