package booking

import (
	"github.com/artel-platform/AOM-BookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics
// Транзакции попадают в репозиторий через контекст (dbmetrics.GetExecutor)
type DBExecutor = dbmetrics.DBExecutor
