package dialogue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/internal/infra/session"
	appointmentRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/appointment"
	salonRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/salon"
	specialistRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/create_booking_request"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/get_availability"
	"github.com/m04kA/SMC-BeautyBot/pkg/logger"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

const (
	chatA int64 = 100
	chatB int64 = 200
	phone       = "+7 000 000-00-00"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// mockSender собирает отправленные сообщения
type mockSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
}

func (s *mockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.sent = append(s.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (s *mockSender) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.sent, "no messages were sent")
	return s.sent[len(s.sent)-1]
}

// fakeDB салоны, мастера, процедуры и записи в памяти
type fakeDB struct {
	mu           sync.Mutex
	salons       []*domain.Salon
	specialists  []*domain.Specialist
	procedures   []*domain.Procedure
	appointments []domain.Appointment
	requests     []domain.BookingRequest
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		salons: []*domain.Salon{
			{ID: 1, Name: "Лаванда", Address: "ул. Ленина, 1"},
			{ID: 2, Name: "Роза", Address: "пр. Мира, 5"},
		},
		specialists: []*domain.Specialist{
			{ID: 1, Name: "Анна", Specialization: "Стилист"},
			{ID: 2, Name: "Мария", Specialization: "Мастер маникюра"},
		},
		procedures: []*domain.Procedure{
			{ID: 1, Name: "Стрижка", Price: 1200},
			{ID: 2, Name: "Маникюр", Price: 1500},
		},
	}
}

func (db *fakeDB) count() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.appointments)
}

type salons struct{ db *fakeDB }

func (r salons) List(context.Context) ([]*domain.Salon, error) { return r.db.salons, nil }

func (r salons) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	for _, s := range r.db.salons {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, salonRepo.ErrSalonNotFound
}

type procedures struct{ db *fakeDB }

func (r procedures) List(context.Context) ([]*domain.Procedure, error) { return r.db.procedures, nil }

func (r procedures) GetByID(_ context.Context, id int64) (*domain.Procedure, error) {
	for _, p := range r.db.procedures {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("procedure %d not found", id)
}

type specialists struct{ db *fakeDB }

func (r specialists) List(context.Context) ([]*domain.Specialist, error) { return r.db.specialists, nil }

func (r specialists) FindFree(_ context.Context, date time.Time, slot types.TimeString) (*domain.Specialist, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.specialists {
		busy := false
		for _, a := range r.db.appointments {
			if a.SpecialistID == s.ID && a.Date.Equal(date) && a.Time == slot {
				busy = true
			}
		}
		if !busy {
			return s, nil
		}
	}
	return nil, specialistRepo.ErrNoFreeSpecialist
}

type appointments struct{ db *fakeDB }

func (r appointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.appointments {
		if existing.SalonID == a.SalonID && existing.SpecialistID == a.SpecialistID &&
			existing.Date.Equal(a.Date) && existing.Time == a.Time {
			return nil, fmt.Errorf("%w: Create - 23505", appointmentRepo.ErrDuplicateAppointment)
		}
	}
	a.ID = int64(len(r.db.appointments) + 1)
	r.db.appointments = append(r.db.appointments, *a)
	return a, nil
}

func (r appointments) BusyTimes(_ context.Context, entity domain.EntityType, id int64, date time.Time) ([]types.TimeString, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var busy []types.TimeString
	for _, a := range r.db.appointments {
		owner := a.SalonID
		if entity == domain.EntityMaster {
			owner = a.SpecialistID
		}
		if owner == id && a.Date.Equal(date) {
			busy = append(busy, a.Time)
		}
	}
	return busy, nil
}

type clients struct{}

func (clients) Upsert(_ context.Context, c *domain.Client) (*domain.Client, error) {
	c.ID = 1
	return c, nil
}

type bookingRequests struct{ db *fakeDB }

func (r bookingRequests) Create(_ context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	req.ID = int64(len(r.db.requests) + 1)
	r.db.requests = append(r.db.requests, *req)
	return req, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	ctrl     *Controller
	db       *fakeDB
	sender   *mockSender
	sessions *session.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := fixedClock{now: time.Date(2025, 1, 14, 9, 0, 0, 0, time.UTC)}
	db := newFakeDB()
	sender := &mockSender{}
	sessions := session.NewMemoryStore(session.DefaultTTL, clock)
	log := logger.NewNop()

	availability := get_availability.NewUseCase(appointments{db}, 10, 18, nil, log)
	creator := create_appointment.NewUseCase(appointments{db}, specialists{db}, clients{}, passthroughTx{}, 10, 18, clock, nil, log)
	requests := create_booking_request.NewUseCase(bookingRequests{db}, log)

	ctrl := NewController(Deps{
		Sender:          sender,
		Sessions:        sessions,
		Salons:          salons{db},
		Specialists:     specialists{db},
		Procedures:      procedures{db},
		Availability:    availability,
		Appointments:    creator,
		BookingRequests: requests,
		Clock:           clock,
		Logger:          log,
	})

	return &fixture{ctrl: ctrl, db: db, sender: sender, sessions: sessions}
}

func (f *fixture) state(t *testing.T, chatID int64) *domain.DialogueState {
	t.Helper()
	state, err := f.sessions.Get(context.Background(), chatID)
	require.NoError(t, err)
	return state
}

func (f *fixture) press(chatID int64, tokens ...string) {
	for _, token := range tokens {
		f.ctrl.HandleCallback(context.Background(), chatID, token)
	}
}

func callbacks(markup interface{}) []string {
	kb, ok := markup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		return nil
	}
	var result []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			result = append(result, *b.CallbackData)
		}
	}
	return result
}

func TestBookingFlow_EndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.press(chatA, "salon_1")
	assert.Equal(t, []string{"procedure_1", "procedure_2"}, callbacks(f.sender.last(t).ReplyMarkup))

	f.press(chatA, "procedure_1")
	dates := callbacks(f.sender.last(t).ReplyMarkup)
	require.Len(t, dates, 5)
	assert.Equal(t, "date_2025-01-14", dates[0])

	f.press(chatA, "date_2025-01-15")
	times := callbacks(f.sender.last(t).ReplyMarkup)
	require.Len(t, times, 9)
	assert.Equal(t, "time_2025-01-15_10:00", times[0])

	f.press(chatA, "time_2025-01-15_10:00")
	state := f.state(t, chatA)
	assert.Equal(t, domain.StepAwaitingPhone, state.Step())
	assert.Equal(t, "2025-01-15", state.Date)
	assert.Equal(t, types.TimeString("10:00"), state.Time)
	assert.Equal(t, types.TimeString("10:00"), state.StartTime)
	assert.Equal(t, types.TimeString("11:00"), state.EndTime)

	f.ctrl.HandleText(ctx, chatA, "Ольга", phone)

	require.Equal(t, 1, f.db.count())
	created := f.db.appointments[0]
	assert.Equal(t, "2025-01-15", created.DateString())
	assert.Equal(t, types.TimeString("10:00"), created.Time)
	assert.Equal(t, int64(1), created.SalonID)
	assert.Equal(t, int64(1), created.SpecialistID)
	assert.Equal(t, phone, created.ClientPhone)
	assert.Equal(t, "Ольга", created.ClientName)

	reply := f.sender.last(t)
	assert.Contains(t, reply.Text, "подтверждена")
	assert.Contains(t, reply.Text, "Лаванда")
	assert.Contains(t, reply.Text, "10:00–11:00")

	assert.Equal(t, domain.StepStart, f.state(t, chatA).Step())
}

func TestInvalidTimeToken_NoAppointment(t *testing.T) {
	f := newFixture(t)
	f.press(chatA, "salon_1", "procedure_1", "date_2025-01-15")
	before := f.state(t, chatA)

	f.press(chatA, "time_invalid_format")

	assert.Contains(t, f.sender.last(t).Text, "ошибка")
	assert.Equal(t, 0, f.db.count())
	after := f.state(t, chatA)
	assert.Equal(t, before.SalonID, after.SalonID)
	assert.Equal(t, before.ProcedureID, after.ProcedureID)
	assert.Equal(t, before.Date, after.Date)
}

func TestInvalidDateToken_StateUnchanged(t *testing.T) {
	f := newFixture(t)
	f.press(chatA, "salon_1", "procedure_2")

	f.press(chatA, "date_2025-13-01")

	assert.Contains(t, f.sender.last(t).Text, "ошибка")
	state := f.state(t, chatA)
	assert.Equal(t, int64(2), state.ProcedureID)
	assert.Empty(t, state.Date)
}

func TestDuplicateCommit_SecondFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// оба чата успели выбрать одно и то же время до подтверждения
	f.press(chatA, "master_1", "salon_1", "procedure_1", "date_2025-01-15", "time_2025-01-15_12:00")
	f.press(chatB, "master_1", "salon_1", "procedure_1", "date_2025-01-15", "time_2025-01-15_12:00")

	f.ctrl.HandlePhone(ctx, chatA, "Ольга", phone)
	assert.Contains(t, f.sender.last(t).Text, "подтверждена")

	f.ctrl.HandlePhone(ctx, chatB, "Ирина", "+7 111 111-11-11")
	assert.Contains(t, f.sender.last(t).Text, "ошибка")

	assert.Equal(t, 1, f.db.count())

	// выбор второго чата сохранился для повторной попытки
	state := f.state(t, chatB)
	assert.Equal(t, int64(1), state.SpecialistID)
	assert.Equal(t, types.TimeString("12:00"), state.Time)
}

func TestTimeKeyboard_IntersectsMasterAvailability(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	f.db.appointments = append(f.db.appointments,
		domain.Appointment{ID: 1, SalonID: 2, SpecialistID: 1, Date: date, Time: "11:00"},
		domain.Appointment{ID: 2, SalonID: 1, SpecialistID: 2, Date: date, Time: "15:00"},
	)

	f.press(chatA, "master_1", "salon_1", "procedure_1", "date_2025-01-15")

	times := callbacks(f.sender.last(t).ReplyMarkup)
	assert.Len(t, times, 7)
	assert.NotContains(t, times, "time_2025-01-15_11:00")
	assert.NotContains(t, times, "time_2025-01-15_15:00")
}

func TestPhoneWithoutSelection(t *testing.T) {
	f := newFixture(t)
	f.press(chatA, "salon_1")

	f.ctrl.HandlePhone(context.Background(), chatA, "Ольга", phone)

	assert.Contains(t, f.sender.last(t).Text, "ошибка")
	assert.Equal(t, 0, f.db.count())
	assert.Equal(t, int64(1), f.state(t, chatA).SalonID)
}

func TestProcedureBeforeSalon(t *testing.T) {
	f := newFixture(t)

	f.press(chatA, "procedure_1")

	assert.Contains(t, f.sender.last(t).Text, "ошибка")
	assert.Equal(t, domain.StepStart, f.state(t, chatA).Step())
}

func TestConsultation_CreatesBookingRequest(t *testing.T) {
	f := newFixture(t)
	f.press(chatA, "agree", "consultation")

	f.ctrl.HandleText(context.Background(), chatA, "Ольга", " "+phone+" ")

	require.Len(t, f.db.requests, 1)
	assert.Equal(t, phone, f.db.requests[0].ClientPhone)
	assert.Equal(t, domain.BookingRequestNew, f.db.requests[0].Status)
	assert.Nil(t, f.db.requests[0].SalonID)
	assert.Contains(t, f.sender.last(t).Text, "перезвоним")

	state := f.state(t, chatA)
	assert.False(t, state.Consultation)
	assert.True(t, state.Agreed)
}

func TestStartAndAgree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ctrl.HandleStart(ctx, chatA)
	assert.Equal(t, []string{"agree"}, callbacks(f.sender.last(t).ReplyMarkup))

	f.press(chatA, "agree")
	assert.Equal(t, []string{"choose_procedure", "choose_master", "consultation"},
		callbacks(f.sender.last(t).ReplyMarkup))

	f.press(chatA, "choose_procedure")
	assert.Equal(t, []string{"salon_1", "salon_2"}, callbacks(f.sender.last(t).ReplyMarkup))

	// повторный /start после согласия сразу открывает меню
	f.press(chatA, "salon_2")
	f.ctrl.HandleStart(ctx, chatA)
	assert.Equal(t, msgMenu, f.sender.last(t).Text)
	assert.Equal(t, int64(0), f.state(t, chatA).SalonID)
}

func TestHandleText_OutsideFlow(t *testing.T) {
	f := newFixture(t)

	f.ctrl.HandleText(context.Background(), chatA, "Ольга", "привет")

	assert.Equal(t, msgUseStart, f.sender.last(t).Text)
	assert.Equal(t, 0, f.db.count())
}

func TestHandlePrices(t *testing.T) {
	f := newFixture(t)

	f.ctrl.HandlePrices(context.Background(), chatA)

	text := f.sender.last(t).Text
	assert.Contains(t, text, "Стрижка — 1200 рублей")
	assert.Contains(t, text, "Маникюр — 1500 рублей")
}

func TestSessionsAreIsolated(t *testing.T) {
	f := newFixture(t)

	f.press(chatA, "salon_1")
	f.press(chatB, "salon_2", "procedure_2")

	assert.Equal(t, int64(1), f.state(t, chatA).SalonID)
	assert.Equal(t, int64(0), f.state(t, chatA).ProcedureID)
	assert.Equal(t, int64(2), f.state(t, chatB).SalonID)
}

func TestTimeSelection_StoredFromEmptyState(t *testing.T) {
	f := newFixture(t)

	f.press(chatA, "time_2025-01-15_14:00")

	state := f.state(t, chatA)
	assert.Equal(t, "2025-01-15", state.Date)
	assert.Equal(t, types.TimeString("14:00"), state.Time)
	assert.Equal(t, types.TimeString("14:00"), state.StartTime)
	assert.Equal(t, types.TimeString("15:00"), state.EndTime)
	assert.Equal(t, msgAskPhone, f.sender.last(t).Text)

	// без салона и процедуры запись не создается
	f.ctrl.HandlePhone(context.Background(), chatA, "Ольга", phone)
	assert.Equal(t, errIncomplete, f.sender.last(t).Text)
	assert.Equal(t, 0, f.db.count())
}

func TestPastDate_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
	}{
		{name: "old time button", tokens: []string{"salon_1", "procedure_1", "time_2024-12-01_10:00"}},
		{name: "yesterday time button", tokens: []string{"salon_1", "procedure_1", "time_2025-01-13_12:00"}},
		{name: "old date button", tokens: []string{"salon_1", "procedure_1", "date_2025-01-13"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.press(chatA, tt.tokens...)

			assert.Equal(t, errPastDate, f.sender.last(t).Text)
			state := f.state(t, chatA)
			assert.Empty(t, state.Date)
			assert.True(t, state.Time.IsZero())

			f.ctrl.HandlePhone(context.Background(), chatA, "Ольга", phone)
			assert.Equal(t, 0, f.db.count())
		})
	}
}

func TestToday_Accepted(t *testing.T) {
	f := newFixture(t)

	f.press(chatA, "salon_1", "procedure_1", "date_2025-01-14", "time_2025-01-14_17:00")
	f.ctrl.HandlePhone(context.Background(), chatA, "Ольга", phone)

	require.Equal(t, 1, f.db.count())
	assert.Equal(t, "2025-01-14", f.db.appointments[0].DateString())
}

func TestTimeOutsideSlots_Rejected(t *testing.T) {
	for _, token := range []string{"time_2025-01-15_09:00", "time_2025-01-15_10:30", "time_2025-01-15_19:00"} {
		t.Run(token, func(t *testing.T) {
			f := newFixture(t)
			f.press(chatA, "salon_1", "procedure_1", "date_2025-01-15")

			f.press(chatA, token)

			assert.Equal(t, errMalformed, f.sender.last(t).Text)
			state := f.state(t, chatA)
			assert.Equal(t, domain.StepDateChosen, state.Step())
			assert.True(t, state.Time.IsZero())
		})
	}
}
