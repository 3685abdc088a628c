package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/itsivali/careconnect-v1/internal/config"
	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository/postgres"
)

const (
	numPatients = 50
	numDoctors  = 10
	numServices = 20

	defaultPatientPassword = "password123"
	defaultAdminPassword   = "admincareconnect"
)

var specializations = []string{"Cardiology", "Neurology", "Pediatrics", "Oncology", "Dermatology"}

var medicalServices = []string{
	"General Checkup", "Blood Test", "X-Ray", "MRI Scan", "CT Scan",
	"Ultrasound", "Vaccination", "Physical Therapy", "Dental Cleaning",
	"Eye Examination", "ECG", "Allergy Test", "Colonoscopy", "Mammogram",
	"Dermatology Consultation", "Nutritional Counseling", "Psychotherapy Session",
	"Chiropractic Adjustment", "Acupuncture", "Physiotherapy",
}

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "Wanjiru", "Kamau", "Achieng", "Otieno",
	"Njeri", "Kipchoge", "Amina", "Barasa", "Zawadi", "Mutua",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Mwangi", "Ochieng",
	"Kariuki", "Wafula", "Njoroge", "Omondi", "Korir", "Chebet", "Maina",
	"Kilonzo", "Garcia", "Martinez", "Lee", "Walker", "Hall",
}

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed, set for reproducible data")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	log.Info().Int64("seed", *seed).Msg("starting seed")

	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	billRepo := postgres.NewBillRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	admin := model.NewAdmin(model.DefaultAdminUsername)
	if err := admin.SetCredential(defaultAdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to set admin credential")
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	patients := seedPatients(ctx, rng, patientRepo)
	doctors := seedDoctors(ctx, rng, doctorRepo)
	services := seedServices(ctx, rng, serviceRepo)

	seedAppointments(ctx, rng, appointmentRepo, patients, doctors)
	seedBills(ctx, rng, billRepo, patients, services)

	log.Info().
		Int("patients", len(patients)).
		Int("doctors", len(doctors)).
		Int("services", len(services)).
		Msg("seed completed")
}

func seedPatients(ctx context.Context, rng *rand.Rand, repo interface {
	Create(context.Context, *model.Patient) error
}) []*model.Patient {
	patients := make([]*model.Patient, 0, numPatients)
	for i := 0; i < numPatients; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		username := fmt.Sprintf("%s.%s%d", lower(first), lower(last), i)

		// Ages between 18 and 90, matching the clinic's intake rules.
		age := 18 + rng.Intn(73)
		dob := time.Now().AddDate(-age, -rng.Intn(12), -rng.Intn(28))

		patient := model.NewPatient(username, dob)
		must(patient.SetFirstName(first))
		must(patient.SetLastName(last))
		must(patient.SetContactNumber(fmt.Sprintf("+2547%08d", rng.Intn(100000000))))
		must(patient.SetEmail(fmt.Sprintf("%s@example.com", username)))
		if err := patient.SetCredential(defaultPatientPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to set patient credential")
		}

		if err := repo.Create(ctx, patient); err != nil {
			log.Fatal().Err(err).Str("username", username).Msg("failed to create patient")
		}
		patients = append(patients, patient)
	}
	return patients
}

func seedDoctors(ctx context.Context, rng *rand.Rand, repo interface {
	Create(context.Context, *model.Doctor) error
}) []*model.Doctor {
	doctors := make([]*model.Doctor, 0, numDoctors)
	for i := 0; i < numDoctors; i++ {
		doctor, err := model.NewDoctor(
			firstNames[rng.Intn(len(firstNames))],
			lastNames[rng.Intn(len(lastNames))],
			specializations[rng.Intn(len(specializations))],
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build doctor")
		}
		if err := repo.Create(ctx, doctor); err != nil {
			log.Fatal().Err(err).Msg("failed to create doctor")
		}
		doctors = append(doctors, doctor)
	}
	return doctors
}

func seedServices(ctx context.Context, rng *rand.Rand, repo interface {
	Create(context.Context, *model.Service) error
}) []*model.Service {
	services := make([]*model.Service, 0, numServices)
	for i := 0; i < numServices; i++ {
		name := medicalServices[i%len(medicalServices)]
		price := 50 + rng.Float64()*950
		price = float64(int(price*100)) / 100

		service, err := model.NewService(name, fmt.Sprintf("Standard %s.", lower(name)), price)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build service")
		}
		if err := repo.Create(ctx, service); err != nil {
			log.Fatal().Err(err).Msg("failed to create service")
		}
		services = append(services, service)
	}
	return services
}

func seedAppointments(ctx context.Context, rng *rand.Rand, repo interface {
	Create(context.Context, *model.Appointment) error
}, patients []*model.Patient, doctors []*model.Doctor) {
	reasons := []string{
		"Routine checkup", "Persistent headache", "Follow-up consultation",
		"Chest pain evaluation", "Skin rash assessment", "Annual physical",
		"Back pain", "Flu symptoms",
	}
	statuses := []model.AppointmentStatus{
		model.AppointmentStatusScheduled, model.AppointmentStatusCompleted, model.AppointmentStatusCancelled,
	}

	for _, patient := range patients {
		n := 1 + rng.Intn(3)
		for i := 0; i < n; i++ {
			date := time.Now().Add(time.Duration(1+rng.Intn(30*24)) * time.Hour)
			appointment, err := model.NewAppointment(
				patient,
				doctors[rng.Intn(len(doctors))],
				date,
				reasons[rng.Intn(len(reasons))],
			)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to build appointment")
			}
			must(appointment.SetStatus(statuses[rng.Intn(len(statuses))]))

			if err := repo.Create(ctx, appointment); err != nil {
				log.Fatal().Err(err).Msg("failed to create appointment")
			}
		}
	}
}

func seedBills(ctx context.Context, rng *rand.Rand, repo interface {
	Create(context.Context, *model.Bill) error
}, patients []*model.Patient, services []*model.Service) {
	statuses := []model.BillStatus{
		model.BillStatusUnpaid, model.BillStatusPaid, model.BillStatusPartiallyPaid,
	}

	for _, patient := range patients {
		n := 1 + rng.Intn(3)
		for i := 0; i < n; i++ {
			billDate := time.Now().Add(-time.Duration(rng.Intn(30*24)) * time.Hour)
			bill, err := model.NewBill(patient, billDate)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to build bill")
			}
			must(bill.SetStatus(statuses[rng.Intn(len(statuses))]))

			// A random selection of services; duplicates are skipped
			// so each service appears at most once per bill.
			items := 1 + rng.Intn(5)
			for j := 0; j < items; j++ {
				service := services[rng.Intn(len(services))]
				if _, err := bill.AddLineItem(service, 1+rng.Intn(3), ""); err != nil {
					continue
				}
			}

			if err := repo.Create(ctx, bill); err != nil {
				log.Fatal().Err(err).Msg("failed to create bill")
			}
		}
	}
}

func lower(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("seed data generation failed")
	}
}
