package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"hevatrack/internal/config"
	"hevatrack/internal/county"
	"hevatrack/internal/db"
	"hevatrack/internal/model"
	"hevatrack/internal/repository"
	"hevatrack/internal/service"
)

var sampleNames = []string{
	"Amina Hassan", "John Mwangi", "Grace Wanjiru", "David Omondi",
	"Fatuma Ali", "Peter Kamau", "Mary Akinyi", "Samuel Kiprop",
	"Halima Abdi", "James Njoroge", "Esther Chebet", "Brian Ouma",
	"Zainab Mohamed", "Kevin Mutua", "Lucy Nyambura", "Daniel Kipchoge",
	"Joyce Atieno", "Moses Wekesa", "Naomi Wairimu", "Collins Odhiambo",
}

var sampleCounties = []string{
	"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Kiambu",
	"Machakos", "Garissa", "Turkana", "Kakamega", "Kilifi",
}

var vulnerabilityTypes = []model.VulnerabilityType{
	model.VulnerabilityPoverty,
	model.VulnerabilityRefugee,
	model.VulnerabilityDisability,
	model.VulnerabilityLGBTQI,
	model.VulnerabilityLowLiteracy,
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Beneficiary{},
		&model.VulnerabilityAssessment{},
		&model.FinancialRecord{},
		&model.DigitalAccess{},
		&model.FundingFlow{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	userRepo := repository.NewUserRepository(gormDB)
	beneficiaryRepo := repository.NewBeneficiaryRepository(gormDB)
	assessmentRepo := repository.NewAssessmentRepository(gormDB)
	financialRepo := repository.NewFinancialRecordRepository(gormDB)
	digitalRepo := repository.NewDigitalAccessRepository(gormDB)

	// Seed predefined accounts through the auth service so password hashing
	// and role checks stay in one place.
	authService := service.NewAuthService(userRepo, nil, nil)
	created, err := authService.SeedPredefinedUsers(ctx, service.DefaultPredefinedUsers())
	if err != nil {
		log.Fatalf("Failed to seed predefined users: %v", err)
	}
	log.Printf("Seeded %d predefined users", created)

	admin, err := userRepo.FindByUsername(ctx, "admin@heva")
	if err != nil {
		log.Fatalf("Failed to load admin user: %v", err)
	}

	seeded, err := seedBeneficiaries(ctx, rng, beneficiaryRepo, assessmentRepo, financialRepo, digitalRepo, admin.ID)
	if err != nil {
		log.Fatalf("Failed to seed beneficiaries: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Beneficiaries created: %d", seeded)
}

// seedBeneficiaries creates one sample beneficiary per name, each with an
// assessment, a financial record, and a digital access record. Roughly half
// get a pending funding request.
func seedBeneficiaries(
	ctx context.Context,
	rng *rand.Rand,
	beneficiaryRepo repository.BeneficiaryRepository,
	assessmentRepo repository.AssessmentRepository,
	financialRepo repository.FinancialRecordRepository,
	digitalRepo repository.DigitalAccessRepository,
	assessorID uint,
) (int, error) {
	existing, err := beneficiaryRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting beneficiaries: %w", err)
	}
	if existing > 0 {
		log.Printf("Found %d existing beneficiaries, skipping sample data", existing)
		return 0, nil
	}

	genders := []string{"female", "male", "other"}
	credit := []model.CreditAccess{model.CreditAccessNone, model.CreditAccessInformal, model.CreditAccessFormal, model.CreditAccessMicrofinance}
	risk := []model.RiskRating{model.RiskLow, model.RiskMedium, model.RiskHigh}
	internet := []model.InternetAccess{model.InternetNone, model.InternetMobileData, model.InternetHomeWifi, model.InternetPublicAccess}

	seeded := 0
	for i, name := range sampleNames {
		countyName := sampleCounties[i%len(sampleCounties)]
		age := 18 + rng.Intn(50)
		b := &model.Beneficiary{
			RegistrationDate:  time.Now().UTC().AddDate(0, 0, -rng.Intn(180)),
			Name:              name,
			Age:               &age,
			Gender:            genders[i%len(genders)],
			VulnerabilityType: vulnerabilityTypes[i%len(vulnerabilityTypes)],
			Location:          countyName + " area",
			County:            countyName,
			ContactInfo:       fmt.Sprintf("+2547%08d", rng.Intn(100000000)),
			IsHighRisk:        rng.Intn(4) == 0,
			Notes:             "Sample record",
		}
		if c := county.ByName(countyName); c != nil {
			b.CountyCode = c.Code
		}
		if i%2 == 0 {
			amount := decimal.NewFromInt(int64(5000 + rng.Intn(20)*2500))
			b.FundingRequested = true
			b.FundingAmount = &amount
			b.FundingStatus = model.FundingStatusPending
			b.FundingNotes = "Requested during registration"
		} else {
			b.FundingStatus = model.FundingStatusNone
		}

		if err := beneficiaryRepo.Create(ctx, b); err != nil {
			return seeded, fmt.Errorf("error creating beneficiary %s: %w", name, err)
		}

		assessment := &model.VulnerabilityAssessment{
			BeneficiaryID:      b.ID,
			AssessorID:         assessorID,
			AssessmentDate:     b.RegistrationDate.AddDate(0, 0, 1),
			PovertyScore:       1 + rng.Intn(5),
			LiteracyScore:      1 + rng.Intn(5),
			DigitalAccessScore: 1 + rng.Intn(5),
			DisabilityStatus:   b.VulnerabilityType == model.VulnerabilityDisability,
			LGBTQIStatus:       b.VulnerabilityType == model.VulnerabilityLGBTQI,
			RefugeeStatus:      b.VulnerabilityType == model.VulnerabilityRefugee,
		}
		if err := assessmentRepo.Create(ctx, assessment); err != nil {
			return seeded, fmt.Errorf("error creating assessment for %s: %w", name, err)
		}

		financial := &model.FinancialRecord{
			BeneficiaryID:          b.ID,
			HasBankAccount:         rng.Intn(2) == 0,
			MobileMoneyUsage:       rng.Intn(4) != 0,
			CreditAccess:           credit[rng.Intn(len(credit))],
			CollateralAvailable:    rng.Intn(5) == 0,
			FinancialLiteracyScore: rng.Intn(11),
			RiskRating:             risk[rng.Intn(len(risk))],
			LastUpdated:            time.Now().UTC(),
		}
		if err := financialRepo.Create(ctx, financial); err != nil {
			return seeded, fmt.Errorf("error creating financial record for %s: %w", name, err)
		}

		digital := &model.DigitalAccess{
			BeneficiaryID:              b.ID,
			OwnsSmartphone:             rng.Intn(3) != 0,
			InternetAccess:             internet[rng.Intn(len(internet))],
			InternetAffordabilityScore: rng.Intn(11),
			DigitalLiteracyScore:       rng.Intn(11),
			LastUpdated:                time.Now().UTC(),
		}
		if err := digitalRepo.Create(ctx, digital); err != nil {
			return seeded, fmt.Errorf("error creating digital access record for %s: %w", name, err)
		}

		seeded++
	}

	return seeded, nil
}
