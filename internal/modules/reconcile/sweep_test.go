package reconcile

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
)

var sweepNow = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:reconcile_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

type bookingFixture struct {
	start    time.Time
	end      time.Time
	contract *domain.Contract
}

func seedBooking(t *testing.T, db *gorm.DB, n int, fx bookingFixture) *domain.Booking {
	t.Helper()

	rt := domain.RoomType{Name: fmt.Sprintf("Type-%d-%s", n, t.Name()), BasePrice: 100.00, Capacity: 2}
	require.NoError(t, db.Create(&rt).Error)

	room := domain.Room{RoomTypeID: rt.ID, Number: fmt.Sprintf("R%d-%s", n, t.Name()), Status: domain.RoomActive, CurrentCondition: domain.ConditionBooked}
	require.NoError(t, db.Create(&room).Error)

	b := domain.Booking{
		UserID:     1,
		RoomID:     room.ID,
		StartDate:  fx.start,
		EndDate:    fx.end,
		Status:     domain.BookingPending,
		TotalPrice: 100.00,
	}
	require.NoError(t, db.Create(&b).Error)

	if fx.contract != nil {
		fx.contract.BookingID = b.ID
		require.NoError(t, db.Create(fx.contract).Error)
	}
	return &b
}

func seedBookingService(t *testing.T, db *gorm.DB, bookingID int64, end time.Time) *domain.BookingService {
	t.Helper()

	svc := domain.Service{Name: fmt.Sprintf("Svc-%d-%s", bookingID, t.Name()), Price: 20.00, IsActive: true}
	require.NoError(t, db.Create(&svc).Error)

	bs := domain.BookingService{
		BookingID: bookingID,
		ServiceID: svc.ID,
		Price:     20.00,
		Quantity:  1,
		Status:    domain.ServicePending,
		StartDate: end.AddDate(0, 0, -1),
		EndDate:   end,
	}
	require.NoError(t, db.Create(&bs).Error)
	return &bs
}

func TestModerationSweep_RejectsContractlessBookingDueToStart(t *testing.T) {
	db := setupTestDB(t)
	b := seedBooking(t, db, 1, bookingFixture{
		start: sweepNow, // stay starts today, no contract issued
		end:   sweepNow.AddDate(0, 0, 2),
	})
	bs := seedBookingService(t, db, b.ID, sweepNow.AddDate(0, 0, 2))

	sweep := NewModerationSweep(db, clock.NewFixed(sweepNow), 24*time.Hour, nil)
	require.NoError(t, sweep.Run(context.Background()))

	var got domain.Booking
	require.NoError(t, db.First(&got, b.ID).Error)
	assert.Equal(t, domain.BookingRejected, got.Status)
	assert.Equal(t, reasonContractMissing, got.RejectReason)

	// the cascade takes the pending service and frees the room
	var gotService domain.BookingService
	require.NoError(t, db.First(&gotService, bs.ID).Error)
	assert.Equal(t, domain.ServiceRejected, gotService.Status)
	assert.Equal(t, reasonContractMissing, gotService.RejectReason)

	var room domain.Room
	require.NoError(t, db.First(&room, b.RoomID).Error)
	assert.Equal(t, domain.ConditionAvailable, room.CurrentCondition)
}

func TestModerationSweep_RejectsUnsignedContractPastGrace(t *testing.T) {
	db := setupTestDB(t)
	b := seedBooking(t, db, 1, bookingFixture{
		start:    sweepNow.AddDate(0, 0, 10),
		end:      sweepNow.AddDate(0, 0, 12),
		contract: &domain.Contract{CreatedAt: sweepNow.Add(-25 * time.Hour)},
	})

	sweep := NewModerationSweep(db, clock.NewFixed(sweepNow), 24*time.Hour, nil)
	require.NoError(t, sweep.Run(context.Background()))

	var got domain.Booking
	require.NoError(t, db.First(&got, b.ID).Error)
	assert.Equal(t, domain.BookingRejected, got.Status)
	assert.Equal(t, reasonContractUnsigned, got.RejectReason)
}

func TestModerationSweep_LeavesBookingsInsideGrace(t *testing.T) {
	db := setupTestDB(t)
	withContract := seedBooking(t, db, 1, bookingFixture{
		start:    sweepNow.AddDate(0, 0, 10),
		end:      sweepNow.AddDate(0, 0, 12),
		contract: &domain.Contract{CreatedAt: sweepNow.Add(-23 * time.Hour)},
	})
	noContractYet := seedBooking(t, db, 2, bookingFixture{
		start: sweepNow.AddDate(0, 0, 1), // starts tomorrow, still time to issue one
		end:   sweepNow.AddDate(0, 0, 3),
	})

	sweep := NewModerationSweep(db, clock.NewFixed(sweepNow), 24*time.Hour, nil)
	require.NoError(t, sweep.Run(context.Background()))

	for _, id := range []int64{withContract.ID, noContractYet.ID} {
		var got domain.Booking
		require.NoError(t, db.First(&got, id).Error)
		assert.Equal(t, domain.BookingPending, got.Status)
	}
}

func TestModerationSweep_SignedContractIsSafe(t *testing.T) {
	db := setupTestDB(t)
	signedAt := sweepNow.Add(-2 * time.Hour)
	b := seedBooking(t, db, 1, bookingFixture{
		start: sweepNow, // due to start, but contract exists and is signed
		end:   sweepNow.AddDate(0, 0, 2),
		contract: &domain.Contract{
			CreatedAt:    sweepNow.Add(-48 * time.Hour),
			SignedByUser: &signedAt,
		},
	})

	sweep := NewModerationSweep(db, clock.NewFixed(sweepNow), 24*time.Hour, nil)
	require.NoError(t, sweep.Run(context.Background()))

	var got domain.Booking
	require.NoError(t, db.First(&got, b.ID).Error)
	assert.Equal(t, domain.BookingPending, got.Status)
}

func TestModerationSweep_RejectsLapsedServiceAlone(t *testing.T) {
	db := setupTestDB(t)
	signedAt := sweepNow.Add(-time.Hour)
	b := seedBooking(t, db, 1, bookingFixture{
		start: sweepNow.AddDate(0, 0, 5),
		end:   sweepNow.AddDate(0, 0, 10),
		contract: &domain.Contract{
			CreatedAt:    sweepNow.Add(-2 * time.Hour),
			SignedByUser: &signedAt,
		},
	})
	lapsed := seedBookingService(t, db, b.ID, sweepNow.AddDate(0, 0, -1))
	future := seedBookingService(t, db, b.ID, sweepNow.AddDate(0, 0, 8))

	sweep := NewModerationSweep(db, clock.NewFixed(sweepNow), 24*time.Hour, nil)
	require.NoError(t, sweep.Run(context.Background()))

	// the booking itself survives; only the expired service is swept
	var got domain.Booking
	require.NoError(t, db.First(&got, b.ID).Error)
	assert.Equal(t, domain.BookingPending, got.Status)

	var gotLapsed, gotFuture domain.BookingService
	require.NoError(t, db.First(&gotLapsed, lapsed.ID).Error)
	require.NoError(t, db.First(&gotFuture, future.ID).Error)
	assert.Equal(t, domain.ServiceRejected, gotLapsed.Status)
	assert.Equal(t, reasonServiceExpired, gotLapsed.RejectReason)
	assert.Equal(t, domain.ServicePending, gotFuture.Status)
}

func TestTierSweep_AssignsHighestQualifyingTier(t *testing.T) {
	db := setupTestDB(t)

	tiers := []domain.UserTier{
		{Name: "Gold", TierOrder: 3, MinSpending: 1000, MinBookings: 2, DurationMonths: 12},
		{Name: "Silver", TierOrder: 2, MinSpending: 100, MinBookings: 1, DurationMonths: 24},
	}
	require.NoError(t, db.Create(&tiers).Error)

	user := domain.User{Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleCustomer, Name: "Alice"}
	require.NoError(t, db.Create(&user).Error)

	rt := domain.RoomType{Name: "Standard", BasePrice: 100.00, Capacity: 2}
	require.NoError(t, db.Create(&rt).Error)
	room := domain.Room{RoomTypeID: rt.ID, Number: "101", Status: domain.RoomActive, CurrentCondition: domain.ConditionAvailable}
	require.NoError(t, db.Create(&room).Error)

	// three bookings inside the trailing year totalling 1200 in payments
	for i, amount := range []float64{500, 400, 300} {
		b := domain.Booking{
			UserID:     user.ID,
			RoomID:     room.ID,
			StartDate:  sweepNow.AddDate(0, -i-1, 0),
			EndDate:    sweepNow.AddDate(0, -i-1, 2),
			Status:     domain.BookingConfirmed,
			TotalPrice: amount,
			CreatedAt:  sweepNow.AddDate(0, -i-1, 0),
		}
		require.NoError(t, db.Create(&b).Error)
		require.NoError(t, db.Create(&domain.Payment{BookingID: b.ID, Amount: amount, Method: domain.PaymentCard}).Error)
	}

	sweep := NewTierSweep(db, clock.NewFixed(sweepNow))
	require.NoError(t, sweep.Run(context.Background()))

	var got domain.User
	require.NoError(t, db.First(&got, user.ID).Error)
	require.NotNil(t, got.TierID)

	var gold domain.UserTier
	require.NoError(t, db.Where("name = ?", "Gold").First(&gold).Error)
	assert.Equal(t, gold.ID, *got.TierID)
}

func TestTierSweep_ClearsTierWhenHistoryAges(t *testing.T) {
	db := setupTestDB(t)

	tiers := []domain.UserTier{
		{Name: "Silver", TierOrder: 2, MinSpending: 100, MinBookings: 1, DurationMonths: 24},
	}
	require.NoError(t, db.Create(&tiers).Error)

	user := domain.User{Email: "bob@example.com", PasswordHash: "x", Role: domain.RoleCustomer, Name: "Bob", TierID: &tiers[0].ID}
	require.NoError(t, db.Create(&user).Error)

	rt := domain.RoomType{Name: "Standard", BasePrice: 100.00, Capacity: 2}
	require.NoError(t, db.Create(&rt).Error)
	room := domain.Room{RoomTypeID: rt.ID, Number: "101", Status: domain.RoomActive, CurrentCondition: domain.ConditionAvailable}
	require.NoError(t, db.Create(&room).Error)

	// the only qualifying booking is older than the tier window
	b := domain.Booking{
		UserID:     user.ID,
		RoomID:     room.ID,
		StartDate:  sweepNow.AddDate(0, -30, 0),
		EndDate:    sweepNow.AddDate(0, -30, 2),
		Status:     domain.BookingConfirmed,
		TotalPrice: 500,
		CreatedAt:  sweepNow.AddDate(0, -30, 0),
	}
	require.NoError(t, db.Create(&b).Error)
	require.NoError(t, db.Create(&domain.Payment{BookingID: b.ID, Amount: 500, Method: domain.PaymentCard}).Error)

	sweep := NewTierSweep(db, clock.NewFixed(sweepNow))
	require.NoError(t, sweep.Run(context.Background()))

	var got domain.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Nil(t, got.TierID)
}

func TestTierSweep_AdminsIgnored(t *testing.T) {
	db := setupTestDB(t)

	tiers := []domain.UserTier{
		{Name: "Bronze", TierOrder: 1, MinSpending: 0, MinBookings: 0, DurationMonths: 36},
	}
	require.NoError(t, db.Create(&tiers).Error)

	admin := domain.User{Email: "admin@example.com", PasswordHash: "x", Role: domain.RoleAdmin, Name: "Admin"}
	require.NoError(t, db.Create(&admin).Error)

	sweep := NewTierSweep(db, clock.NewFixed(sweepNow))
	require.NoError(t, sweep.Run(context.Background()))

	var got domain.User
	require.NoError(t, db.First(&got, admin.ID).Error)
	assert.Nil(t, got.TierID)
}
