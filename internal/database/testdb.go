package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & fixtures
var (
	TestAdminUser m.User
	TestSeeker1   m.User
	TestSeeker2   m.User
	TestEmployer1 m.User
	TestEmployer2 m.User
	TestHRUser    m.User
	TestCompany1  m.Company
	TestCompany2  m.Company

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	// Exported seeded job posts
	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample job seekers, employers and HR staff
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample users, companies and job posts if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	// Ignore admin user that may get created during NewDBInstance
	if userCount > 1 {
		return loadTestData(db)
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	companies := []m.Company{
		{
			ID:          uuid.New(),
			Name:        "TechNova",
			Description: "Innovative platform solutions",
			Industry:    "Software",
		},
		{
			ID:          uuid.New(),
			Name:        "DataForge",
			Description: "Data analytics consulting",
			Industry:    "Consulting",
		},
	}
	if err := db.Create(&companies).Error; err != nil {
		return err
	}
	TestCompany1 = companies[0]
	TestCompany2 = companies[1]

	users := []m.User{
		{
			ID:        uuid.New(),
			Email:     "seeker1@example.com",
			FirstName: "Alice",
			LastName:  "Nguyen",
			Role:      m.RoleJobSeeker,
			Password:  hashedPwd,
			Skills:    pq.StringArray{"Go", "SQL"},
		},
		{
			ID:        uuid.New(),
			Email:     "seeker2@example.com",
			FirstName: "Bob",
			LastName:  "Somsak",
			Role:      m.RoleJobSeeker,
			Password:  hashedPwd,
			Skills:    pq.StringArray{"JavaScript", "React"},
		},
		{
			ID:        uuid.New(),
			Email:     "employer1@example.com",
			FirstName: "Carol",
			LastName:  "Intr",
			Role:      m.RoleEmployer,
			Password:  hashedPwd,
			CompanyID: &companies[0].ID,
		},
		{
			ID:        uuid.New(),
			Email:     "employer2@example.com",
			FirstName: "Dan",
			LastName:  "Prak",
			Role:      m.RoleEmployer,
			Password:  hashedPwd,
			CompanyID: &companies[1].ID,
		},
		{
			ID:        uuid.New(),
			Email:     "hr1@example.com",
			FirstName: "Eve",
			LastName:  "Srisuk",
			Role:      m.RoleHR,
			Password:  hashedPwd,
			CompanyID: &companies[0].ID,
			HRPermissions: m.HRPermissions{
				CanPostJobs:           true,
				CanManageApplications: true,
				CanScheduleInterviews: true,
			},
		},
		{
			ID:       uuid.New(),
			Email:    "admin@example.com",
			Role:     m.RoleAdmin,
			Password: hashedPwd,
		},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	// Map created users to exported variables
	for _, u := range users {
		switch u.Email {
		case "seeker1@example.com":
			TestSeeker1 = u
		case "seeker2@example.com":
			TestSeeker2 = u
		case "employer1@example.com":
			TestEmployer1 = u
		case "employer2@example.com":
			TestEmployer2 = u
		case "hr1@example.com":
			TestHRUser = u
		case "admin@example.com":
			TestAdminUser = u
		}
	}

	// Company owners
	if err := db.Model(&m.Company{}).Where("id = ?", TestCompany1.ID).
		Update("owner_id", TestEmployer1.ID).Error; err != nil {
		return err
	}
	if err := db.Model(&m.Company{}).Where("id = ?", TestCompany2.ID).
		Update("owner_id", TestEmployer2.ID).Error; err != nil {
		return err
	}
	TestCompany1.OwnerID = TestEmployer1.ID
	TestCompany2.OwnerID = TestEmployer2.ID

	// Seed job posts (only if none exist yet)
	var jobCount int64
	if err := db.Model(&m.Job{}).Count(&jobCount).Error; err != nil {
		return err
	}
	if jobCount == 0 {
		jobs := []m.Job{
			{
				EmployerID: TestEmployer1.ID,
				IsActive:   true,
				EditableJobInfo: m.EditableJobInfo{
					Title:           "Backend Engineer",
					Description:     "Work on Go microservices and database layers.",
					Location:        "Bangkok (Hybrid)",
					JobType:         "full-time",
					Category:        "Engineering",
					ExperienceLevel: "mid",
					Skills:          pq.StringArray{"Go", "PostgreSQL"},
				},
			},
			{
				EmployerID: TestEmployer1.ID,
				IsActive:   true,
				EditableJobInfo: m.EditableJobInfo{
					Title:           "Frontend Developer",
					Description:     "Build the component library in React.",
					Location:        "Remote",
					JobType:         "contract",
					Category:        "Engineering",
					ExperienceLevel: "entry",
					Skills:          pq.StringArray{"JavaScript", "React"},
				},
			},
			{
				EmployerID: TestEmployer2.ID,
				IsActive:   true,
				EditableJobInfo: m.EditableJobInfo{
					Title:           "Data Analyst",
					Description:     "Support data cleansing and dashboard creation.",
					Location:        "Chiang Mai (On-site)",
					JobType:         "full-time",
					Category:        "Data",
					ExperienceLevel: "entry",
					Skills:          pq.StringArray{"SQL", "Python"},
				},
			},
		}

		if err := db.Create(&jobs).Error; err != nil {
			return err
		}
		TestJob1 = jobs[0]
		TestJob2 = jobs[1]
		TestJob3 = jobs[2]
	}

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("email IN ?", []string{
		"seeker1@example.com", "seeker2@example.com",
		"employer1@example.com", "employer2@example.com",
		"hr1@example.com", "admin@example.com",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Email {
		case "seeker1@example.com":
			TestSeeker1 = u
		case "seeker2@example.com":
			TestSeeker2 = u
		case "employer1@example.com":
			TestEmployer1 = u
		case "employer2@example.com":
			TestEmployer2 = u
		case "hr1@example.com":
			TestHRUser = u
		case "admin@example.com":
			TestAdminUser = u
		}
	}

	_ = db.First(&TestCompany1, "name = ?", "TechNova").Error
	_ = db.First(&TestCompany2, "name = ?", "DataForge").Error

	// Load first three job posts deterministically
	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}
