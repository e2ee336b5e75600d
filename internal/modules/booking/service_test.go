package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"resortbooking/internal/database"
	"resortbooking/internal/domain"
	"resortbooking/internal/pkg/clock"
	"resortbooking/internal/repository"
)

var testNow = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:booking_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

// seedInventory creates one active room of a 100.00 type plus two services.
func seedInventory(t *testing.T, db *gorm.DB) (roomID int64, serviceIDs []int64) {
	t.Helper()

	rt := domain.RoomType{Name: "Standard", BasePrice: 100.00, Capacity: 2}
	require.NoError(t, db.Create(&rt).Error)

	room := domain.Room{RoomTypeID: rt.ID, Number: "101", Status: domain.RoomActive, CurrentCondition: domain.ConditionAvailable}
	require.NoError(t, db.Create(&room).Error)

	breakfast := domain.Service{Name: "Breakfast", Price: 25.00, IsActive: true}
	spa := domain.Service{Name: "Spa Access", Price: 45.00, IsActive: true}
	require.NoError(t, db.Create(&breakfast).Error)
	require.NoError(t, db.Create(&spa).Error)

	return room.ID, []int64{breakfast.ID, spa.ID}
}

func newTestService(db *gorm.DB) *Service {
	return NewService(db, repository.NewBookingRepository(db), clock.NewFixed(testNow), nil)
}

func TestCreateBooking_Success(t *testing.T) {
	db := setupTestDB(t)
	roomID, serviceIDs := seedInventory(t, db)
	svc := newTestService(db)

	b, err := svc.CreateBooking(context.Background(), CreateParams{
		UserID:    1,
		RoomID:    roomID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Services:  []ServiceSelection{{ServiceID: serviceIDs[0], Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 125.00, b.TotalPrice)
	require.Len(t, b.Services, 1)
	assert.Equal(t, 25.00, b.Services[0].Price)

	var room domain.Room
	require.NoError(t, db.First(&room, roomID).Error)
	assert.Equal(t, domain.ConditionBooked, room.CurrentCondition)
}

func TestCreateBooking_UnknownServiceSkipped(t *testing.T) {
	db := setupTestDB(t)
	roomID, serviceIDs := seedInventory(t, db)
	svc := newTestService(db)

	b, err := svc.CreateBooking(context.Background(), CreateParams{
		UserID:    1,
		RoomID:    roomID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Services: []ServiceSelection{
			{ServiceID: serviceIDs[0], Quantity: 1},
			{ServiceID: 99999, Quantity: 1}, // stale reference, must not fail the booking
		},
	})

	require.NoError(t, err)
	assert.Len(t, b.Services, 1)
	assert.Equal(t, 125.00, b.TotalPrice)
}

func TestCreateBooking_ConflictOnBookedRoom(t *testing.T) {
	db := setupTestDB(t)
	roomID, _ := seedInventory(t, db)
	svc := newTestService(db)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateBooking(context.Background(), CreateParams{UserID: 1, RoomID: roomID, StartDate: start, EndDate: end})
	require.NoError(t, err)

	var bookingsBefore, servicesBefore int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&bookingsBefore).Error)
	require.NoError(t, db.Model(&domain.BookingService{}).Count(&servicesBefore).Error)

	_, err = svc.CreateBooking(context.Background(), CreateParams{UserID: 2, RoomID: roomID, StartDate: start, EndDate: end})
	assert.ErrorIs(t, err, ErrRoomConflict)

	// the failed attempt must not leave any rows behind
	var bookingsAfter, servicesAfter int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&bookingsAfter).Error)
	require.NoError(t, db.Model(&domain.BookingService{}).Count(&servicesAfter).Error)
	assert.Equal(t, bookingsBefore, bookingsAfter)
	assert.Equal(t, servicesBefore, servicesAfter)
}

func TestCreateBooking_RoomUnderMaintenance(t *testing.T) {
	db := setupTestDB(t)
	roomID, _ := seedInventory(t, db)
	require.NoError(t, db.Model(&domain.Room{}).Where("id = ?", roomID).
		Update("status", domain.RoomUnderMaintenance).Error)
	svc := newTestService(db)

	_, err := svc.CreateBooking(context.Background(), CreateParams{
		UserID:    1,
		RoomID:    roomID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestCreateBooking_RoomNotFound(t *testing.T) {
	db := setupTestDB(t)
	seedInventory(t, db)
	svc := newTestService(db)

	_, err := svc.CreateBooking(context.Background(), CreateParams{
		UserID:    1,
		RoomID:    12345,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	db := setupTestDB(t)
	roomID, _ := seedInventory(t, db)
	svc := newTestService(db)

	_, err := svc.CreateBooking(context.Background(), CreateParams{
		UserID:    1,
		RoomID:    roomID,
		StartDate: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancelBooking_PendingReleasesRoom(t *testing.T) {
	db := setupTestDB(t)
	roomID, _ := seedInventory(t, db)
	svc := newTestService(db)

	b, err := svc.CreateBooking(context.Background(), CreateParams{
		UserID:    1,
		RoomID:    roomID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(context.Background(), 1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)

	var room domain.Room
	require.NoError(t, db.First(&room, roomID).Error)
	assert.Equal(t, domain.ConditionAvailable, room.CurrentCondition)
}

func TestCancelBooking_ConfirmedIsForbidden(t *testing.T) {
	db := setupTestDB(t)
	roomID, _ := seedInventory(t, db)
	svc := newTestService(db)

	b, err := svc.CreateBooking(context.Background(), CreateParams{
		UserID:    1,
		RoomID:    roomID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.Booking{}).Where("id = ?", b.ID).
		Update("status", domain.BookingConfirmed).Error)

	_, err = svc.CancelBooking(context.Background(), 1, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	db := setupTestDB(t)
	roomID, _ := seedInventory(t, db)
	svc := newTestService(db)

	b, err := svc.CreateBooking(context.Background(), CreateParams{
		UserID:    1,
		RoomID:    roomID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), 1, b.ID)
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), 1, b.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBooking_ForeignBookingLooksMissing(t *testing.T) {
	db := setupTestDB(t)
	roomID, _ := seedInventory(t, db)
	svc := newTestService(db)

	b, err := svc.CreateBooking(context.Background(), CreateParams{
		UserID:    1,
		RoomID:    roomID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// another user's id and a nonexistent id must fail identically
	_, errForeign := svc.CancelBooking(context.Background(), 2, b.ID)
	_, errMissing := svc.CancelBooking(context.Background(), 2, 98765)
	assert.ErrorIs(t, errForeign, ErrForbidden)
	assert.ErrorIs(t, errMissing, ErrForbidden)
}
