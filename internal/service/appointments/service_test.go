package appointments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/appointment"
	bookingRequestRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/bookingrequest"
	"github.com/m04kA/SMC-BeautyBot/internal/service/appointments/models"
	"github.com/m04kA/SMC-BeautyBot/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BeautyBot/pkg/logger"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

type fakeRepo struct {
	items     map[int64]*domain.Appointment
	updateErr error
	filter    domain.AppointmentFilter
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if a, ok := f.items[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeRepo) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	f.filter = filter
	res := make([]*domain.Appointment, 0, len(f.items))
	for _, a := range f.items {
		res = append(res, a)
	}
	return res, nil
}

func (f *fakeRepo) Update(_ context.Context, a *domain.Appointment) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.items[a.ID] = a
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeRequests struct {
	status *domain.BookingRequestStatus
}

func (f *fakeRequests) List(_ context.Context, status *domain.BookingRequestStatus) ([]*domain.BookingRequest, error) {
	f.status = status
	return []*domain.BookingRequest{{ID: 1, ClientName: "Анна", ClientPhone: "+7", Status: domain.BookingRequestNew}}, nil
}

func (f *fakeRequests) MarkProcessed(_ context.Context, id int64) error {
	if id != 1 {
		return bookingRequestRepo.ErrBookingRequestNotFound
	}
	return nil
}

type fakeCreator struct {
	err error
	req *create_appointment.Request
}

func (f *fakeCreator) Execute(_ context.Context, req *create_appointment.Request) (*create_appointment.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	end, _ := req.Time.AddMinutes(60)
	return &create_appointment.Response{
		ID:           5,
		SalonID:      req.SalonID,
		SpecialistID: 1,
		ProcedureID:  req.ProcedureID,
		ClientID:     9,
		Date:         req.Date,
		Time:         req.Time,
		StartTime:    req.Time,
		EndTime:      end,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		AutoAssigned: req.SpecialistID == 0,
	}, nil
}

func newService(creator *fakeCreator) (*Service, *fakeRepo) {
	repo := &fakeRepo{items: map[int64]*domain.Appointment{
		1: {
			ID: 1, SalonID: 1, SpecialistID: 2, ProcedureID: 3,
			Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Time: "10:00", StartTime: "10:00", EndTime: "11:00",
			ClientName: "Анна", ClientPhone: "+7",
		},
	}}
	return NewService(repo, &fakeRequests{}, creator, logger.NewNop()), repo
}

func request() *models.AppointmentRequest {
	return &models.AppointmentRequest{
		SalonID:      1,
		SpecialistID: 2,
		ProcedureID:  3,
		Date:         "2025-01-16",
		Time:         "12:00",
		ClientName:   "Ирина",
		ClientPhone:  "+7 111",
	}
}

func TestCreate(t *testing.T) {
	creator := &fakeCreator{}
	svc, _ := newService(creator)

	resp, err := svc.Create(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, "2025-01-16", resp.Date)
	assert.Equal(t, "13:00", resp.EndTime)
	assert.Equal(t, types.TimeString("12:00"), creator.req.Time)
}

func TestCreate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "taken", err: create_appointment.ErrSlotTaken, want: ErrSlotTaken},
		{name: "no specialist", err: create_appointment.ErrNoFreeSpecialist, want: ErrNoFreeSpecialist},
		{name: "bad reference", err: fmt.Errorf("%w: fk", create_appointment.ErrInvalidSelection), want: ErrInvalidSelection},
		{name: "invalid", err: create_appointment.ErrInvalidInput, want: ErrInvalidInput},
		{name: "internal", err: create_appointment.ErrInternal, want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(&fakeCreator{err: tt.err})
			_, err := svc.Create(context.Background(), request())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreate_BadDate(t *testing.T) {
	svc, _ := newService(&fakeCreator{})
	req := request()
	req.Date = "2025-02-30"

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate(t *testing.T) {
	svc, repo := newService(&fakeCreator{})

	resp, err := svc.Update(context.Background(), 1, request())

	require.NoError(t, err)
	assert.Equal(t, "12:00", resp.Time)
	assert.Equal(t, "13:00", repo.items[1].EndTime.String())
	assert.Equal(t, "Ирина", repo.items[1].ClientName)
}

func TestUpdate_Errors(t *testing.T) {
	svc, repo := newService(&fakeCreator{})

	_, err := svc.Update(context.Background(), 99, request())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	noSpecialist := request()
	noSpecialist.SpecialistID = 0
	_, err = svc.Update(context.Background(), 1, noSpecialist)
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.updateErr = appointmentRepo.ErrDuplicateAppointment
	_, err = svc.Update(context.Background(), 1, request())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestListAndDelete(t *testing.T) {
	svc, repo := newService(&fakeCreator{})
	salonID := int64(1)

	list, err := svc.List(context.Background(), &models.ListAppointmentsRequest{SalonID: &salonID})
	require.NoError(t, err)
	assert.Len(t, list.Appointments, 1)
	assert.Equal(t, &salonID, repo.filter.SalonID)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrAppointmentNotFound)
}

func TestBookingRequests(t *testing.T) {
	svc, _ := newService(&fakeCreator{})

	list, err := svc.ListBookingRequests(context.Background(), "new")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Status)

	_, err = svc.ListBookingRequests(context.Background(), "archived")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.ProcessBookingRequest(context.Background(), 1))
	assert.ErrorIs(t, svc.ProcessBookingRequest(context.Background(), 2), ErrBookingRequestNotFound)
}
