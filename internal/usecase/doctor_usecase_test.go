package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarmamodia/RemediX/internal/clock"
	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
)

func newDoctorFixture(doctor *entity.Doctor, consultations ...*entity.Consultation) (*doctorUsecase, *fakeDoctorRepo, *fakeConsultationRepo) {
	doctorRepo := newFakeDoctorRepo()
	if doctor != nil {
		doctorRepo.doctors[doctor.ID] = doctor
	}
	consultationRepo := newFakeConsultationRepo(consultations...)
	uc := NewDoctorUsecase(nil, testLogger(), testClock(), doctorRepo, consultationRepo).(*doctorUsecase)
	uc.now = func() time.Time { return mondayAt(8, 0) }
	return uc, doctorRepo, consultationRepo
}

func TestSetAvailability_BlockedByPendingConsultations(t *testing.T) {
	doctor := testDoctor(50000)
	busyStart, busyEnd := mondaySlot(10, 0)
	uc, repo, _ := newDoctorFixture(doctor, &entity.Consultation{
		DoctorID:  doctor.ID,
		PatientID: uuid.New(),
		StartTime: busyStart,
		EndTime:   busyEnd,
		Status:    entity.ConsultationStatusPending,
	})

	err := uc.SetAvailability(context.Background(), doctor.ID, false)
	assert.ErrorIs(t, err, ErrHasPendingConsultations)
	_, touched := repo.availability[doctor.ID]
	assert.False(t, touched)

	// Restating the current value is not a toggle and goes through.
	require.NoError(t, uc.SetAvailability(context.Background(), doctor.ID, true))
	assert.True(t, repo.availability[doctor.ID])

	// The block applies in both directions.
	doctor.Available = false
	err = uc.SetAvailability(context.Background(), doctor.ID, true)
	assert.ErrorIs(t, err, ErrHasPendingConsultations)
}

func TestSetAvailability_OffWithoutPending(t *testing.T) {
	doctor := testDoctor(50000)
	busyStart, busyEnd := mondaySlot(10, 0)
	uc, repo, _ := newDoctorFixture(doctor, &entity.Consultation{
		DoctorID:  doctor.ID,
		PatientID: uuid.New(),
		StartTime: busyStart,
		EndTime:   busyEnd,
		Status:    entity.ConsultationStatusCompleted,
	})

	require.NoError(t, uc.SetAvailability(context.Background(), doctor.ID, false))
	assert.False(t, repo.availability[doctor.ID])
}

func TestGetDoctor_NotFound(t *testing.T) {
	uc, _, _ := newDoctorFixture(nil)

	_, err := uc.GetDoctor(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	doctor := testDoctor(50000)
	uc, _, _ := newDoctorFixture(doctor)

	newFee := int64(75000)
	resp, err := uc.UpdateProfile(context.Background(), doctor.ID, &dto.UpdateDoctorRequest{Fee: &newFee})
	require.NoError(t, err)

	assert.Equal(t, int64(75000), resp.Fee)
	assert.Equal(t, "Dr. Asha Rao", resp.Name)
	assert.Equal(t, "dermatology", resp.Specialty)
}

func TestFindInstantDoctors_LocalizesWindow(t *testing.T) {
	doctor := testDoctor(50000)
	uc, repo, _ := newDoctorFixture(doctor)
	repo.slotHits = []entity.Doctor{*doctor}

	start, end := mondaySlot(10, 0)
	resp, err := uc.FindInstantDoctors(context.Background(), &dto.InstantDoctorsRequest{
		Specialty: "dermatology",
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	// The repository received the window converted to clinic-local shift
	// coordinates alongside the absolute instants.
	require.NotNil(t, repo.slotQuery)
	assert.Equal(t, "dermatology", repo.slotQuery.specialty)
	assert.Equal(t, clock.Monday, repo.slotQuery.day)
	assert.Equal(t, 10*60, repo.slotQuery.startMin)
	assert.Equal(t, 10*60+30, repo.slotQuery.endMin)
	assert.True(t, repo.slotQuery.start.Equal(start))
	assert.True(t, repo.slotQuery.end.Equal(end))
}

func TestFindInstantDoctors_RejectsInvalidWindow(t *testing.T) {
	uc, _, _ := newDoctorFixture(nil)

	start := mondayAt(10, 0)
	_, err := uc.FindInstantDoctors(context.Background(), &dto.InstantDoctorsRequest{
		Specialty: "dermatology",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, entity.ErrSlotWrongDuration)
}
