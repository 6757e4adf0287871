// Package dialogue ведет пошаговый диалог записи: салон, процедура, дата, время, телефон.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-BeautyBot/internal/bot/callbackdata"
	"github.com/m04kA/SMC-BeautyBot/internal/bot/keyboards"
	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/create_booking_request"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/get_availability"
	"github.com/m04kA/SMC-BeautyBot/pkg/ptr"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// Controller обрабатывает команды, нажатия кнопок и ввод телефона
type Controller struct {
	sender          Sender
	sessions        SessionStore
	salons          SalonRepository
	specialists     SpecialistRepository
	procedures      ProcedureRepository
	availability    AvailabilityCalculator
	appointments    AppointmentCreator
	bookingRequests BookingRequestCreator
	clock           Clock
	logger          Logger
	dateWindowDays  int
	firstHour       int
	lastHour        int
}

// Deps зависимости контроллера
type Deps struct {
	Sender          Sender
	Sessions        SessionStore
	Salons          SalonRepository
	Specialists     SpecialistRepository
	Procedures      ProcedureRepository
	Availability    AvailabilityCalculator
	Appointments    AppointmentCreator
	BookingRequests BookingRequestCreator
	Clock           Clock
	Logger          Logger
	DateWindowDays  int

	// Окно часовых слотов; если оба нуля, берется окно по умолчанию
	FirstHour int
	LastHour  int
}

// NewController создает контроллер диалога
func NewController(deps Deps) *Controller {
	days := deps.DateWindowDays
	if days <= 0 {
		days = domain.DefaultDateWindowDays
	}
	firstHour, lastHour := deps.FirstHour, deps.LastHour
	if firstHour == 0 && lastHour == 0 {
		firstHour, lastHour = domain.DefaultFirstSlotHour, domain.DefaultLastSlotHour
	}
	return &Controller{
		sender:          deps.Sender,
		sessions:        deps.Sessions,
		salons:          deps.Salons,
		specialists:     deps.Specialists,
		procedures:      deps.Procedures,
		availability:    deps.Availability,
		appointments:    deps.Appointments,
		bookingRequests: deps.BookingRequests,
		clock:           deps.Clock,
		logger:          deps.Logger,
		dateWindowDays:  days,
		firstHour:       firstHour,
		lastHour:        lastHour,
	}
}

// HandleStart сбрасывает выбор и показывает приветствие с кнопкой согласия
func (c *Controller) HandleStart(ctx context.Context, chatID int64) {
	state, ok := c.loadState(ctx, chatID)
	if !ok {
		return
	}

	state.Reset()
	if !c.saveState(ctx, chatID, state) {
		return
	}

	if state.Agreed {
		c.reply(chatID, msgMenu, keyboards.MainMenu())
		return
	}
	c.reply(chatID, msgGreeting, keyboards.Consent())
}

// HandlePrices отправляет прайс-лист
func (c *Controller) HandlePrices(ctx context.Context, chatID int64) {
	procedures, err := c.procedures.List(ctx)
	if err != nil {
		c.logger.Error("Dialogue.HandlePrices: chat=%d failed to list procedures: %v", chatID, err)
		c.reply(chatID, errInternal, nil)
		return
	}
	if len(procedures) == 0 {
		c.reply(chatID, msgNoProcedures, nil)
		return
	}
	c.reply(chatID, msgPricesTitle+"\n"+keyboards.FormatProcedurePrices(procedures), nil)
}

// HandleCallback обрабатывает нажатие inline-кнопки
// Нераспознанный токен не меняет состояние, пользователь получает сообщение об ошибке
func (c *Controller) HandleCallback(ctx context.Context, chatID int64, raw string) {
	data, err := callbackdata.Parse(raw)
	if err != nil {
		c.logger.Warn("Dialogue.HandleCallback: chat=%d %v", chatID, err)
		c.reply(chatID, errMalformed, nil)
		return
	}

	state, ok := c.loadState(ctx, chatID)
	if !ok {
		return
	}

	switch data.Kind {
	case callbackdata.KindAgree:
		state.Agreed = true
		if c.saveState(ctx, chatID, state) {
			c.reply(chatID, msgMenu, keyboards.MainMenu())
		}

	case callbackdata.KindRestart:
		state.Reset()
		if c.saveState(ctx, chatID, state) {
			c.reply(chatID, msgMenu, keyboards.MainMenu())
		}

	case callbackdata.KindChooseProcedure:
		c.sendSalons(ctx, chatID)

	case callbackdata.KindChooseMaster:
		c.sendSpecialists(ctx, chatID)

	case callbackdata.KindConsultation:
		state.Consultation = true
		if c.saveState(ctx, chatID, state) {
			c.reply(chatID, msgAskPhoneConsult, phoneKeyboard())
		}

	case callbackdata.KindMaster:
		state.SpecialistID = data.ID
		if c.saveState(ctx, chatID, state) {
			c.sendSalons(ctx, chatID)
		}

	case callbackdata.KindSalon:
		c.onSalon(ctx, chatID, state, data.ID)

	case callbackdata.KindProcedure:
		c.onProcedure(ctx, chatID, state, data.ID)

	case callbackdata.KindDate:
		c.onDate(ctx, chatID, state, data)

	case callbackdata.KindTime:
		c.onTime(ctx, chatID, state, data)
	}
}

// HandleText обрабатывает текст: на шаге ввода телефона это номер
func (c *Controller) HandleText(ctx context.Context, chatID int64, clientName, text string) {
	state, ok := c.loadState(ctx, chatID)
	if !ok {
		return
	}

	switch state.Step() {
	case domain.StepAwaitingPhone, domain.StepConsultation:
		c.commit(ctx, chatID, state, clientName, text)
	default:
		c.reply(chatID, msgUseStart, nil)
	}
}

// HandlePhone обрабатывает номер телефона (текстом или через "поделиться контактом")
func (c *Controller) HandlePhone(ctx context.Context, chatID int64, clientName, phone string) {
	state, ok := c.loadState(ctx, chatID)
	if !ok {
		return
	}
	c.commit(ctx, chatID, state, clientName, phone)
}

func (c *Controller) onSalon(ctx context.Context, chatID int64, state *domain.DialogueState, salonID int64) {
	state.SalonID = salonID
	state.ProcedureID = 0
	clearSlot(state)
	if !c.saveState(ctx, chatID, state) {
		return
	}

	procedures, err := c.procedures.List(ctx)
	if err != nil {
		c.logger.Error("Dialogue.onSalon: chat=%d failed to list procedures: %v", chatID, err)
		c.reply(chatID, errInternal, nil)
		return
	}
	if len(procedures) == 0 {
		c.reply(chatID, msgNoProcedures, keyboards.Restart())
		return
	}
	c.reply(chatID, msgChooseProcedure, keyboards.Procedures(procedures))
}

func (c *Controller) onProcedure(ctx context.Context, chatID int64, state *domain.DialogueState, procedureID int64) {
	if state.SalonID == 0 {
		c.reply(chatID, errSalonFirst, nil)
		return
	}

	state.ProcedureID = procedureID
	clearSlot(state)
	if !c.saveState(ctx, chatID, state) {
		return
	}
	c.reply(chatID, msgChooseDate, keyboards.Dates(c.clock.Now(), c.dateWindowDays))
}

func (c *Controller) onDate(ctx context.Context, chatID int64, state *domain.DialogueState, data callbackdata.Data) {
	if state.SalonID == 0 {
		c.reply(chatID, errSalonFirst, nil)
		return
	}
	if state.ProcedureID == 0 {
		c.reply(chatID, errProcedureFirst, nil)
		return
	}
	if c.isPast(data.Date) {
		c.logger.Warn("Dialogue.onDate: chat=%d past date %s", chatID, data.DateString())
		c.reply(chatID, errPastDate, keyboards.Dates(c.clock.Now(), c.dateWindowDays))
		return
	}

	free, err := c.freeSlots(ctx, state, data.Date)
	if err != nil {
		c.logger.Error("Dialogue.onDate: chat=%d failed to get availability: %v", chatID, err)
		c.reply(chatID, errInternal, nil)
		return
	}

	clearSlot(state)
	state.Date = data.DateString()
	if !c.saveState(ctx, chatID, state) {
		return
	}

	slots := free.FreeSlots()
	if len(slots) == 0 {
		c.reply(chatID, msgNoFreeTime, keyboards.Dates(c.clock.Now(), c.dateWindowDays))
		return
	}
	c.reply(chatID, msgChooseTime, keyboards.Times(data.Date, slots))
}

// onTime сохраняет дату, время и границы часового слота
// Полноту выбора (салон, процедура) проверяет commit
func (c *Controller) onTime(ctx context.Context, chatID int64, state *domain.DialogueState, data callbackdata.Data) {
	if c.isPast(data.Date) {
		c.logger.Warn("Dialogue.onTime: chat=%d past date %s", chatID, data.DateString())
		c.reply(chatID, errPastDate, nil)
		return
	}
	if !c.isSlot(data.Time) {
		c.logger.Warn("Dialogue.onTime: chat=%d %s is not a slot start", chatID, data.Time)
		c.reply(chatID, errMalformed, nil)
		return
	}

	end, err := data.Time.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		c.logger.Warn("Dialogue.onTime: chat=%d bad slot %s: %v", chatID, data.Time, err)
		c.reply(chatID, errMalformed, nil)
		return
	}

	state.Date = data.DateString()
	state.Time = data.Time
	state.StartTime = data.Time
	state.EndTime = end
	if !c.saveState(ctx, chatID, state) {
		return
	}
	c.reply(chatID, msgAskPhone, phoneKeyboard())
}

// isPast дата раньше сегодняшней
func (c *Controller) isPast(date time.Time) bool {
	now := c.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return date.Before(today)
}

// isSlot начало целого часа внутри окна записи
func (c *Controller) isSlot(t types.TimeString) bool {
	if t.Validate() != nil {
		return false
	}
	return t.Minutes()%60 == 0 && t.Hour() >= c.firstHour && t.Hour() <= c.lastHour
}

// freeSlots свободные слоты салона, а если мастер выбран, то пересечение с его слотами
func (c *Controller) freeSlots(ctx context.Context, state *domain.DialogueState, date time.Time) (domain.Availability, error) {
	free, err := c.availability.Execute(ctx, &get_availability.Request{
		Entity:   domain.EntitySalon,
		EntityID: state.SalonID,
		Date:     date,
	})
	if err != nil {
		return nil, err
	}

	if state.SpecialistID == 0 {
		return free, nil
	}

	master, err := c.availability.Execute(ctx, &get_availability.Request{
		Entity:   domain.EntityMaster,
		EntityID: state.SpecialistID,
		Date:     date,
	})
	if err != nil {
		return nil, err
	}
	return free.Intersect(master), nil
}

// commit создает запись или заявку на консультацию
// При любой ошибке состояние не меняется, чтобы можно было повторить
func (c *Controller) commit(ctx context.Context, chatID int64, state *domain.DialogueState, clientName, phone string) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		c.reply(chatID, errInvalidPhone, nil)
		return
	}
	if strings.TrimSpace(clientName) == "" {
		clientName = phone
	}

	if state.Consultation {
		c.commitConsultation(ctx, chatID, state, clientName, phone)
		return
	}

	if !state.ReadyToCommit() {
		c.reply(chatID, errIncomplete, nil)
		return
	}

	date, err := time.Parse(domain.DateFormat, state.Date)
	if err != nil {
		c.logger.Error("Dialogue.commit: chat=%d bad date in state %q: %v", chatID, state.Date, err)
		c.reply(chatID, errIncomplete, nil)
		return
	}

	created, err := c.appointments.Execute(ctx, &create_appointment.Request{
		SalonID:      state.SalonID,
		SpecialistID: state.SpecialistID,
		ProcedureID:  state.ProcedureID,
		Date:         date,
		Time:         state.Time,
		ClientName:   clientName,
		ClientPhone:  phone,
	})
	if err != nil {
		c.logger.Warn("Dialogue.commit: chat=%d failed to create appointment: %v", chatID, err)
		c.reply(chatID, commitErrorMessage(err), nil)
		return
	}

	c.logger.Info("Dialogue.commit: chat=%d appointment %d created", chatID, created.ID)

	state.Reset()
	c.saveState(ctx, chatID, state)

	c.reply(chatID, c.confirmation(ctx, created), tgbotapi.NewRemoveKeyboard(true))
}

func (c *Controller) commitConsultation(ctx context.Context, chatID int64, state *domain.DialogueState, clientName, phone string) {
	req := &create_booking_request.Request{
		ClientName:  clientName,
		ClientPhone: phone,
	}
	if state.SalonID > 0 {
		req.SalonID = ptr.Ptr(state.SalonID)
	}

	created, err := c.bookingRequests.Execute(ctx, req)
	if err != nil {
		c.logger.Error("Dialogue.commitConsultation: chat=%d failed: %v", chatID, err)
		c.reply(chatID, errInternal, nil)
		return
	}

	c.logger.Info("Dialogue.commitConsultation: chat=%d booking request %d created", chatID, created.ID)

	state.Reset()
	c.saveState(ctx, chatID, state)

	c.reply(chatID, msgConsultAccepted, tgbotapi.NewRemoveKeyboard(true))
}

// confirmation текст подтверждения; при ошибке чтения справочников выводятся идентификаторы
func (c *Controller) confirmation(ctx context.Context, a *create_appointment.Response) string {
	salonName := fmt.Sprintf("#%d", a.SalonID)
	if salon, err := c.salons.GetByID(ctx, a.SalonID); err == nil {
		salonName = salon.Name
	} else {
		c.logger.Warn("Dialogue.confirmation: salon %d: %v", a.SalonID, err)
	}

	procedureName := fmt.Sprintf("#%d", a.ProcedureID)
	if procedure, err := c.procedures.GetByID(ctx, a.ProcedureID); err == nil {
		procedureName = procedure.Name
	} else {
		c.logger.Warn("Dialogue.confirmation: procedure %d: %v", a.ProcedureID, err)
	}

	return fmt.Sprintf(msgConfirmed,
		salonName,
		procedureName,
		a.Date.Format("02.01.2006"),
		a.StartTime,
		a.EndTime,
	)
}

func (c *Controller) sendSalons(ctx context.Context, chatID int64) {
	salons, err := c.salons.List(ctx)
	if err != nil {
		c.logger.Error("Dialogue.sendSalons: chat=%d failed to list salons: %v", chatID, err)
		c.reply(chatID, errInternal, nil)
		return
	}
	if len(salons) == 0 {
		c.reply(chatID, msgNoSalons, nil)
		return
	}
	c.reply(chatID, msgChooseSalon, keyboards.Salons(salons))
}

func (c *Controller) sendSpecialists(ctx context.Context, chatID int64) {
	specialists, err := c.specialists.List(ctx)
	if err != nil {
		c.logger.Error("Dialogue.sendSpecialists: chat=%d failed to list specialists: %v", chatID, err)
		c.reply(chatID, errInternal, nil)
		return
	}
	if len(specialists) == 0 {
		c.reply(chatID, msgNoMasters, nil)
		return
	}
	c.reply(chatID, msgChooseMaster, keyboards.Specialists(specialists))
}

func (c *Controller) loadState(ctx context.Context, chatID int64) (*domain.DialogueState, bool) {
	state, err := c.sessions.Get(ctx, chatID)
	if err != nil {
		c.logger.Error("Dialogue: chat=%d failed to load state: %v", chatID, err)
		c.reply(chatID, errInternal, nil)
		return nil, false
	}
	state.ChatID = chatID
	return state, true
}

func (c *Controller) saveState(ctx context.Context, chatID int64, state *domain.DialogueState) bool {
	if err := c.sessions.Save(ctx, state); err != nil {
		c.logger.Error("Dialogue: chat=%d failed to save state: %v", chatID, err)
		c.reply(chatID, errInternal, nil)
		return false
	}
	return true
}

func (c *Controller) reply(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := c.sender.Send(msg); err != nil {
		c.logger.Error("Dialogue: chat=%d failed to send message: %v", chatID, err)
	}
}

func commitErrorMessage(err error) string {
	switch {
	case errors.Is(err, create_appointment.ErrSlotTaken):
		return errSlotTaken
	case errors.Is(err, create_appointment.ErrNoFreeSpecialist):
		return errNoFreeMaster
	case errors.Is(err, create_appointment.ErrInvalidSelection):
		return errInvalidChoice
	case errors.Is(err, create_appointment.ErrInvalidInput):
		return errIncomplete
	default:
		return errInternal
	}
}

func clearSlot(state *domain.DialogueState) {
	state.Date = ""
	state.Time = ""
	state.StartTime = ""
	state.EndTime = ""
}

func phoneKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(msgSharePhoneButton)),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}
