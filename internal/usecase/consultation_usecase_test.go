package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
)

type consultationFixture struct {
	uc       *consultationUsecase
	repo     *fakeConsultationRepo
	rooms    *fakeRoomService
	notifier *fakeNotifier
}

func newConsultationFixture(consultations ...*entity.Consultation) *consultationFixture {
	repo := newFakeConsultationRepo(consultations...)
	rooms := &fakeRoomService{}
	notifier := &fakeNotifier{}
	uc := NewConsultationUsecase(nil, testLogger(), repo, rooms, notifier).(*consultationUsecase)
	uc.now = func() time.Time { return mondayAt(9, 55) }
	return &consultationFixture{uc: uc, repo: repo, rooms: rooms, notifier: notifier}
}

func pendingConsultation(doctorID, patientID uuid.UUID, hour, min int) *entity.Consultation {
	start, end := mondaySlot(hour, min)
	return &entity.Consultation{
		ID:        uuid.New(),
		DoctorID:  doctorID,
		PatientID: patientID,
		StartTime: start,
		EndTime:   end,
		Status:    entity.ConsultationStatusPending,
	}
}

func TestJoin_CreatesRoomLazily(t *testing.T) {
	doctorID, patientID := uuid.New(), uuid.New()
	// Starts 10:00, now is 09:55: inside the ten minute window.
	consultation := pendingConsultation(doctorID, patientID, 10, 0)
	f := newConsultationFixture(consultation)

	resp, err := f.uc.Join(context.Background(), patientID, consultation.ID)
	require.NoError(t, err)
	assert.Equal(t, "room-abc", resp.RoomID)
	assert.Equal(t, "room-token", resp.Token)
	assert.Equal(t, 1, f.rooms.createCalls)

	// The second participant reuses the stored room.
	resp, err = f.uc.Join(context.Background(), doctorID, consultation.ID)
	require.NoError(t, err)
	assert.Equal(t, "room-abc", resp.RoomID)
	assert.Equal(t, 1, f.rooms.createCalls)
}

func TestJoin_TooEarly(t *testing.T) {
	doctorID, patientID := uuid.New(), uuid.New()
	// Starts 11:00, now is 09:55: more than ten minutes out.
	consultation := pendingConsultation(doctorID, patientID, 11, 0)
	f := newConsultationFixture(consultation)

	_, err := f.uc.Join(context.Background(), patientID, consultation.ID)
	assert.ErrorIs(t, err, ErrJoinTooEarly)
	assert.Equal(t, 0, f.rooms.createCalls)
}

func TestJoin_NonParticipant(t *testing.T) {
	consultation := pendingConsultation(uuid.New(), uuid.New(), 10, 0)
	f := newConsultationFixture(consultation)

	_, err := f.uc.Join(context.Background(), uuid.New(), consultation.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestJoin_NotFoundAndNotPending(t *testing.T) {
	doctorID, patientID := uuid.New(), uuid.New()
	consultation := pendingConsultation(doctorID, patientID, 10, 0)
	consultation.Status = entity.ConsultationStatusCompleted
	f := newConsultationFixture(consultation)

	_, err := f.uc.Join(context.Background(), patientID, uuid.New())
	assert.ErrorIs(t, err, ErrConsultationNotFound)

	_, err = f.uc.Join(context.Background(), patientID, consultation.ID)
	assert.ErrorIs(t, err, ErrConsultationNotPending)
}

func TestGetConsultation_ByParticipant(t *testing.T) {
	doctorID, patientID := uuid.New(), uuid.New()
	consultation := pendingConsultation(doctorID, patientID, 10, 0)
	f := newConsultationFixture(consultation)

	doctorView, err := f.uc.GetForDoctor(context.Background(), doctorID, consultation.ID)
	require.NoError(t, err)
	assert.Equal(t, consultation.ID, doctorView.ID)

	patientView, err := f.uc.GetForPatient(context.Background(), patientID, consultation.ID)
	require.NoError(t, err)
	assert.Equal(t, consultation.ID, patientView.ID)
}

func TestGetConsultation_WrongSideRejected(t *testing.T) {
	doctorID, patientID := uuid.New(), uuid.New()
	consultation := pendingConsultation(doctorID, patientID, 10, 0)
	f := newConsultationFixture(consultation)

	// The patient cannot use the doctor view and vice versa.
	_, err := f.uc.GetForDoctor(context.Background(), patientID, consultation.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = f.uc.GetForPatient(context.Background(), doctorID, consultation.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = f.uc.GetForDoctor(context.Background(), doctorID, uuid.New())
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestComplete_TearsDownRoom(t *testing.T) {
	doctorID, patientID := uuid.New(), uuid.New()
	consultation := pendingConsultation(doctorID, patientID, 10, 0)
	roomID := "room-live"
	consultation.RoomID = &roomID
	f := newConsultationFixture(consultation)

	err := f.uc.Complete(context.Background(), doctorID, consultation.ID)
	require.NoError(t, err)

	stored := f.repo.consultations[consultation.ID]
	assert.Equal(t, entity.ConsultationStatusCompleted, stored.Status)
	assert.Nil(t, stored.RoomID)
	assert.Equal(t, []string{"room-live"}, f.rooms.deactivated)

	require.Len(t, f.notifier.completed, 1)
	assert.Equal(t, consultation.ID, f.notifier.completed[0].ConsultationID)
}

func TestComplete_OnlyConsultingDoctor(t *testing.T) {
	doctorID := uuid.New()
	consultation := pendingConsultation(doctorID, uuid.New(), 10, 0)
	f := newConsultationFixture(consultation)

	err := f.uc.Complete(context.Background(), uuid.New(), consultation.ID)
	assert.ErrorIs(t, err, ErrNotConsultationOwner)

	require.NoError(t, f.uc.Complete(context.Background(), doctorID, consultation.ID))

	// Completing twice is rejected.
	err = f.uc.Complete(context.Background(), doctorID, consultation.ID)
	assert.ErrorIs(t, err, ErrConsultationNotPending)
}

func TestAttachPrescription(t *testing.T) {
	doctorID := uuid.New()
	consultation := pendingConsultation(doctorID, uuid.New(), 10, 0)
	f := newConsultationFixture(consultation)

	req := &dto.AttachPrescriptionRequest{PrescriptionURL: "https://files.test/rx.pdf"}

	err := f.uc.AttachPrescription(context.Background(), uuid.New(), consultation.ID, req)
	assert.ErrorIs(t, err, ErrNotConsultationOwner)

	require.NoError(t, f.uc.AttachPrescription(context.Background(), doctorID, consultation.ID, req))
	stored := f.repo.consultations[consultation.ID]
	require.NotNil(t, stored.PrescriptionURL)
	assert.Equal(t, "https://files.test/rx.pdf", *stored.PrescriptionURL)
}

func TestListConsultations(t *testing.T) {
	doctorID, patientID := uuid.New(), uuid.New()
	f := newConsultationFixture(
		pendingConsultation(doctorID, patientID, 10, 0),
		pendingConsultation(doctorID, uuid.New(), 11, 0),
		pendingConsultation(uuid.New(), patientID, 12, 0),
	)

	doctorList, err := f.uc.ListForDoctor(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, 2, doctorList.Total)

	patientList, err := f.uc.ListForPatient(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 2, patientList.Total)
}
