package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/config"
	"github.com/agendafacil/agenda-saas/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.Module{},
		&models.TenantModule{},
		&models.User{},
		&models.Person{},
		&models.Permission{},
		&models.UserPermission{},
		&models.StatusStudent{},
		&models.Student{},
		&models.StudentNote{},
		&models.StudentDocument{},
		&models.Service{},
		&models.ServicePrice{},
		&models.Provider{},
		&models.StatusAgenda{},
		&models.Appointment{},
		&models.ProfessionalAvailability{},
		&models.ProfessionalBlock{},
		&models.TenantBusinessHour{},
		&models.File{},
		&models.FinancialOrigin{},
		&models.FinancialCategory{},
		&models.PaymentMethod{},
		&models.FinancialTransaction{},
		&models.Commission{},
		&models.ProviderCommissionConfig{},
		&models.WhatsappInstance{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Exclusion constraint nos agendamentos: mesmo que duas transações
	// passem pela checagem de conflito, o banco rejeita a segunda.
	// Bordas fechadas ('[]') casam com o teste inclusivo da aplicação.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            provider_id WITH =,
            tstzrange(date_start, date_end, '[]') WITH &&
        )
    `)

	db.Exec(`
        UPDATE tenants
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
