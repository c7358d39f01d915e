package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	pending := Booking{Status: StatusPending}
	inProgress := Booking{Status: StatusInProgress}
	completed := Booking{Status: StatusCompleted}

	assert.True(t, pending.CanTransitionTo(StatusInProgress))
	assert.True(t, pending.CanTransitionTo(StatusCancelled))
	assert.False(t, pending.CanTransitionTo(StatusCompleted))
	assert.True(t, inProgress.CanTransitionTo(StatusCompleted))
	assert.False(t, completed.CanTransitionTo(StatusCancelled))
	assert.False(t, completed.CanTransitionTo(StatusPending))
}

func TestBooking_ServiceNames_Distinct(t *testing.T) {
	b := Booking{Items: []BookingItem{
		{ServiceID: 1, ServiceName: "Ganti Oli Mesin", OptionID: 101},
		{ServiceID: 1, ServiceName: "Ganti Oli Mesin", OptionID: 102},
		{ServiceID: 2, ServiceName: "Ganti Kampas Rem", OptionID: 201},
	}}

	assert.Equal(t, []string{"Ganti Oli Mesin", "Ganti Kampas Rem"}, b.ServiceNames())
}

func TestBooking_IsAssignedTo(t *testing.T) {
	id := int64(7)
	b := Booking{MechanicID: &id}

	assert.True(t, b.IsAssignedTo(7))
	assert.False(t, b.IsAssignedTo(8))
	assert.False(t, (&Booking{}).IsAssignedTo(7))
}

func TestCustomer_ServiceStatus(t *testing.T) {
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, -1, 0)
	old := now.AddDate(0, -4, 0)

	assert.Equal(t, ServiceNeverServiced, (&Customer{}).ServiceStatus(now))
	assert.Equal(t, ServiceActive, (&Customer{LastServiceDate: &recent}).ServiceStatus(now))
	assert.Equal(t, ServiceDue, (&Customer{LastServiceDate: &old}).ServiceStatus(now))
	assert.True(t, (&Customer{}).IsServiceOverdue(now))
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, VehicleMPV.IsValid())
	assert.False(t, VehicleType("Truck").IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, BookingStatus("Selesai").IsValid())
	assert.True(t, RoleWarehouse.IsValid())
	assert.False(t, Role("owner").IsValid())
	assert.True(t, DiscountFixed.IsValid())
	assert.False(t, DiscountType("free").IsValid())
}
