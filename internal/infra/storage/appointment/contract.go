package appointment

import "github.com/m04kA/SMC-BeautyBot/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
