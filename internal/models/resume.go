package models

import (
	"encoding/json"
	"time"
)

// Resume представляет одно загруженное резюме. Поле AnalysisResult может
// быть nil — это означает, что внешний анализ не выполнялся или завершился
// с ошибкой; сама запись при этом остаётся валидной.
type Resume struct {
	ID             string          `json:"id"`                        // Уникальный идентификатор записи (uuid)
	UserID         string          `json:"user_id"`                   // Идентификатор владельца
	FilePath       string          `json:"file_path"`                 // Путь к файлу во временном хранилище
	AnalysisResult json.RawMessage `json:"analysis_result,omitempty"` // Результат анализа (nil, если отсутствует)
	UploadedAt     time.Time       `json:"uploaded_at"`               // Время загрузки
}
