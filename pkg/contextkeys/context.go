package contextkeys

type ContextKey string

const (
	// DBContextKey - ключ, под которым middleware кладет *gorm.DB (пул или транзакцию)
	DBContextKey ContextKey = "db"
)
