package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"jumparena/internal/database"
	"jumparena/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "jumparena.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(domain.AllModels()...); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if err := database.EnsureZoneOverlapConstraint(db); err != nil {
		log.Fatal("overlap constraint failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notification")
	db.Exec("DELETE FROM visit")
	db.Exec("DELETE FROM payment")
	db.Exec("DELETE FROM booking_service")
	db.Exec("DELETE FROM booking")
	db.Exec("DELETE FROM subscription")
	db.Exec("DELETE FROM schedule_slot")
	db.Exec("DELETE FROM service")
	db.Exec("DELETE FROM zone")
	db.Exec("DELETE FROM account")
	db.Exec("DELETE FROM employee")
	db.Exec("DELETE FROM client")

	log.Println("Creating accounts...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	db.Create(&domain.Account{
		Login:        "admin",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	})
	log.Println("Admin created: admin / admin123")

	trainer := domain.Employee{
		FullName: "Sanzhar Bekov",
		Position: "trainer",
		Phone:    "+7 777 123 4567",
	}
	db.Create(&trainer)

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	db.Create(&domain.Account{
		Login:        "frontdesk",
		PasswordHash: string(staffHash),
		Role:         domain.RoleStaff,
		EmployeeID:   &trainer.ID,
	})

	client := domain.Client{
		FullName: "Aliya Nurpeisova",
		Phone:    "+7 777 765 4321",
		Email:    "aliya@mail.kz",
		Status:   domain.ClientActive,
	}
	db.Create(&client)

	clientHash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
	db.Create(&domain.Account{
		Login:        "aliya",
		PasswordHash: string(clientHash),
		Role:         domain.RoleClient,
		ClientID:     &client.ID,
	})
	log.Println("Client created: aliya / client123")

	log.Println("Creating zones and services...")

	mainZone := domain.Zone{
		Name:        "Main Arena",
		Type:        domain.ZoneTrampoline,
		Capacity:    10,
		BasePrice:   decimal.RequireFromString("800.00"),
		Status:      domain.ZoneAvailable,
		Description: "Open-jump trampoline field",
	}
	db.Create(&mainZone)

	foamZone := domain.Zone{
		Name:      "Foam Pit",
		Type:      domain.ZoneFoamPit,
		Capacity:  6,
		BasePrice: decimal.RequireFromString("600.00"),
		Status:    domain.ZoneAvailable,
	}
	db.Create(&foamZone)

	services := []domain.Service{
		{Name: "Grip socks", BasePrice: decimal.RequireFromString("150.00")},
		{Name: "Locker rental", BasePrice: decimal.RequireFromString("100.00")},
		{Name: "Instructor hour", BasePrice: decimal.RequireFromString("500.00")},
	}
	for i := range services {
		db.Create(&services[i])
	}

	log.Println("Creating group slots for tomorrow...")

	day := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	for hour := 10; hour < 18; hour++ {
		from := day.Add(time.Duration(hour) * time.Hour)
		slot := domain.ScheduleSlot{
			ZoneID:       mainZone.ID,
			EmployeeID:   &trainer.ID,
			DatetimeFrom: from,
			DatetimeTo:   from.Add(time.Hour),
			Capacity:     8,
			Price:        decimal.RequireFromString("700.00"),
			LessonType:   "group",
			IsActive:     true,
		}
		db.Create(&slot)
	}

	log.Println("Seed complete.")
}
