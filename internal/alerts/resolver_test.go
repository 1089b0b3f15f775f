package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

type fakeVolunteerDirectory struct {
	filtered []models.Volunteer
	everyone []models.Volunteer

	gotHospitalID uint
	gotLevel      int
	allCalled     bool
}

func (f *fakeVolunteerDirectory) ByHospitalAndSeverity(hospitalID uint, level int) ([]models.Volunteer, error) {
	f.gotHospitalID = hospitalID
	f.gotLevel = level
	return f.filtered, nil
}

func (f *fakeVolunteerDirectory) All() ([]models.Volunteer, error) {
	f.allCalled = true
	return f.everyone, nil
}

func volunteer(phone string) models.Volunteer {
	return models.Volunteer{PhoneNumber: phone, MinimumSeverity: 0}
}

func TestFindListenersRoutineFiltersByHospitalAndThreshold(t *testing.T) {
	dir := &fakeVolunteerDirectory{filtered: []models.Volunteer{volunteer("+962790000001")}}
	resolver := NewListenerResolver(dir)

	listeners, err := resolver.FindListeners(&models.Alert{
		AlertLevel: types.AlertLevelRoutine,
		HospitalID: 7,
	})
	require.NoError(t, err)

	assert.Len(t, listeners, 1)
	assert.Equal(t, uint(7), dir.gotHospitalID)
	assert.Equal(t, 0, dir.gotLevel)
	assert.False(t, dir.allCalled)
}

func TestFindListenersUrgentUsesOrdinalOne(t *testing.T) {
	dir := &fakeVolunteerDirectory{}
	resolver := NewListenerResolver(dir)

	_, err := resolver.FindListeners(&models.Alert{
		AlertLevel: types.AlertLevelUrgent,
		HospitalID: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(3), dir.gotHospitalID)
	assert.Equal(t, 1, dir.gotLevel)
}

func TestFindListenersLifeOrDeathBroadcastsToEveryone(t *testing.T) {
	dir := &fakeVolunteerDirectory{
		everyone: []models.Volunteer{
			volunteer("+962790000001"),
			volunteer("+962790000002"),
			volunteer("+962790000003"),
		},
	}
	resolver := NewListenerResolver(dir)

	listeners, err := resolver.FindListeners(&models.Alert{
		AlertLevel: types.AlertLevelLifeOrDeath,
		HospitalID: 7,
	})
	require.NoError(t, err)

	assert.Len(t, listeners, 3)
	assert.True(t, dir.allCalled)
	assert.Zero(t, dir.gotHospitalID)
}

func TestFindListenersUnknownLevel(t *testing.T) {
	resolver := NewListenerResolver(&fakeVolunteerDirectory{})

	_, err := resolver.FindListeners(&models.Alert{AlertLevel: "CRITICAL"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CRITICAL")
}
