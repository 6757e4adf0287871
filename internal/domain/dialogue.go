package domain

import (
	"time"

	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// DialogueState состояние диалога записи для одного чата
// Нулевые значения означают, что шаг еще не пройден
type DialogueState struct {
	ChatID       int64            `json:"chat_id"`
	Agreed       bool             `json:"agreed,omitempty"`
	SalonID      int64            `json:"salon_id,omitempty"`
	SpecialistID int64            `json:"specialist_id,omitempty"`
	ProcedureID  int64            `json:"procedure_id,omitempty"`
	Date         string           `json:"date,omitempty"`
	Time         types.TimeString `json:"time,omitempty"`
	StartTime    types.TimeString `json:"start_time,omitempty"`
	EndTime      types.TimeString `json:"end_time,omitempty"`
	Consultation bool             `json:"consultation,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Step текущий шаг диалога, выводится из заполненных полей
type Step string

const (
	StepStart           Step = "start"
	StepSalonChosen     Step = "salon_chosen"
	StepProcedureChosen Step = "procedure_chosen"
	StepDateChosen      Step = "date_chosen"
	StepAwaitingPhone   Step = "awaiting_phone"
	StepConsultation    Step = "consultation"
)

// Step вычисляет шаг по состоянию
func (s *DialogueState) Step() Step {
	switch {
	case s.Consultation:
		return StepConsultation
	case s.SalonID == 0:
		return StepStart
	case s.ProcedureID == 0:
		return StepSalonChosen
	case s.Date == "":
		return StepProcedureChosen
	case s.Time.IsZero():
		return StepDateChosen
	default:
		return StepAwaitingPhone
	}
}

// ReadyToCommit все поля для создания записи выбраны (мастер может быть назначен автоматически)
func (s *DialogueState) ReadyToCommit() bool {
	return s.SalonID > 0 && s.ProcedureID > 0 && s.Date != "" && !s.Time.IsZero()
}

// Reset сбрасывает выбор, сохраняя согласие на обработку данных
func (s *DialogueState) Reset() {
	*s = DialogueState{ChatID: s.ChatID, Agreed: s.Agreed}
}
