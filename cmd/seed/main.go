package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"resortbooking/internal/database"
	"resortbooking/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "file:resort.db?cache=shared"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@resort.example",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Resort Admin",
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin)

	customerHash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
	customers := []domain.User{
		{Email: "alice@example.com", PasswordHash: string(customerHash), Role: domain.RoleCustomer, Name: "Alice"},
		{Email: "bob@example.com", PasswordHash: string(customerHash), Role: domain.RoleCustomer, Name: "Bob"},
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&customers)

	log.Println("Creating room types and rooms...")
	roomTypes := []domain.RoomType{
		{Name: "Standard", BasePrice: 100.00, Capacity: 2},
		{Name: "Deluxe", BasePrice: 180.00, Capacity: 3},
		{Name: "Villa", BasePrice: 420.00, Capacity: 6},
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roomTypes)

	var standard, deluxe, villa domain.RoomType
	db.Where("name = ?", "Standard").First(&standard)
	db.Where("name = ?", "Deluxe").First(&deluxe)
	db.Where("name = ?", "Villa").First(&villa)

	rooms := []domain.Room{
		{RoomTypeID: standard.ID, Number: "101", Status: domain.RoomActive, CurrentCondition: domain.ConditionAvailable},
		{RoomTypeID: standard.ID, Number: "102", Status: domain.RoomActive, CurrentCondition: domain.ConditionAvailable},
		{RoomTypeID: deluxe.ID, Number: "201", Status: domain.RoomActive, CurrentCondition: domain.ConditionAvailable},
		{RoomTypeID: deluxe.ID, Number: "202", Status: domain.RoomUnderMaintenance, CurrentCondition: domain.ConditionAvailable},
		{RoomTypeID: villa.ID, Number: "V1", Status: domain.RoomActive, CurrentCondition: domain.ConditionAvailable},
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rooms)

	log.Println("Creating services...")
	services := []domain.Service{
		{Name: "Breakfast", Price: 15.00, IsActive: true},
		{Name: "Spa Access", Price: 45.00, IsActive: true},
		{Name: "Airport Transfer", Price: 60.00, IsActive: true},
		{Name: "Late Checkout", Price: 25.00, IsActive: true},
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&services)

	log.Println("Creating tiers...")
	tiers := []domain.UserTier{
		{Name: "Gold", TierOrder: 3, MinSpending: 1000, MinBookings: 2, DurationMonths: 12},
		{Name: "Silver", TierOrder: 2, MinSpending: 100, MinBookings: 1, DurationMonths: 24},
		{Name: "Bronze", TierOrder: 1, MinSpending: 0, MinBookings: 1, DurationMonths: 36},
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tiers)

	log.Println("Seed completed")
	log.Println("Admin login: admin@resort.example / admin123")
}
