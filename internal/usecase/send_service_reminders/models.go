package send_service_reminders

// Статусы напоминаний для метрик
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
	StatusLogged = "logged"
)

// Result итог запуска
type Result struct {
	Overdue int
	Sent    int
	Failed  int
	Logged  int
}
