package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"edutrack_backend/internals/configs"
	"edutrack_backend/internals/constants"
	database "edutrack_backend/internals/databases"
	quizModel "edutrack_backend/internals/features/quizzes/quiz/model"
	resultModel "edutrack_backend/internals/features/quizzes/result/model"
	authHelper "edutrack_backend/internals/features/users/auth/helper"
	authService "edutrack_backend/internals/features/users/auth/service"
	userModel "edutrack_backend/internals/features/users/user/model"
	routes "edutrack_backend/internals/route"
)

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "edutrack", "POSTGRES_PASSWORD": "edutrack", "POSTGRES_DB": "edutrack"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://edutrack:edutrack@%s:%s/edutrack?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

// newTestApp migrates the schema and mounts the full route surface
// against the container database.
func newTestApp(t *testing.T, dsn string) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "integration-secret"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&quizModel.QuizModel{},
		&resultModel.ResultModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, role string) (userModel.UserModel, string) {
	t.Helper()
	hash, err := authHelper.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := userModel.UserModel{
		Name:     "User " + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: hash,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := authService.JwtGenerate(user)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return user, token
}

func seedQuiz(t *testing.T, db *gorm.DB, owner uuid.UUID) quizModel.QuizModel {
	t.Helper()
	questions := []quizModel.QuestionDoc{
		{ID: "q1", Text: "What is 2+2?", Options: []string{"3", "4"}, CorrectAnswer: 1, Points: 1},
	}
	quiz := quizModel.QuizModel{
		CreatedBy:   owner,
		Title:       "Arithmetic",
		Subject:     "Math",
		Questions:   datatypes.NewJSONType(questions),
		TotalPoints: 1,
	}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz
}

func jsonRequest(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 30_000)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestSubmitRaceKeepsOneResult(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	dsn, cleanup := startPostgres(t, ctx)
	defer cleanup()
	app, db := newTestApp(t, dsn)

	teacher, _ := seedUser(t, db, constants.RoleTeacher)
	_, studentToken := seedUser(t, db, constants.RoleStudent)
	quiz := seedQuiz(t, db, teacher.ID)

	payload := map[string]any{
		"quiz_id":            quiz.ID.String(),
		"score":              1,
		"total":              1,
		"answers":            []int{1},
		"time_spent_seconds": 60,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	// Two submissions race on the insert; the unique index must let
	// exactly one through no matter how they interleave. Failures are
	// reported back on the channel so only the test goroutine fails.
	type outcome struct {
		status int
		err    error
	}
	outcomes := make(chan outcome, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/results", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+studentToken)
			resp, err := app.Test(req, 30_000)
			if err != nil {
				outcomes <- outcome{err: err}
				return
			}
			outcomes <- outcome{status: resp.StatusCode}
		}()
	}
	wg.Wait()
	close(outcomes)

	got := map[int]int{}
	for o := range outcomes {
		if o.err != nil {
			t.Fatalf("app.Test: %v", o.err)
		}
		got[o.status]++
	}
	if got[fiber.StatusCreated] != 1 || got[fiber.StatusConflict] != 1 {
		t.Fatalf("statuses = %v, want exactly one 201 and one 409", got)
	}

	var count int64
	if err := db.Model(&resultModel.ResultModel{}).
		Where("quiz_id = ?", quiz.ID).Count(&count).Error; err != nil {
		t.Fatalf("count results: %v", err)
	}
	if count != 1 {
		t.Fatalf("results stored = %d, want 1", count)
	}

	// A later retry must also bounce off the stored row.
	resp := jsonRequest(t, app, http.MethodPost, "/api/results", studentToken, payload)
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("retry status = %d, want 409", resp.StatusCode)
	}
}

func TestQuizUpdateOwnershipAnswersNotFound(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	dsn, cleanup := startPostgres(t, ctx)
	defer cleanup()
	app, db := newTestApp(t, dsn)

	owner, ownerToken := seedUser(t, db, constants.RoleTeacher)
	_, otherToken := seedUser(t, db, constants.RoleTeacher)
	quiz := seedQuiz(t, db, owner.ID)

	patch := map[string]any{"title": "Renamed"}

	resp := jsonRequest(t, app, http.MethodPut, "/api/quizzes/"+quiz.ID.String(), otherToken, patch)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("non-owner update status = %d, want 404", resp.StatusCode)
	}

	resp = jsonRequest(t, app, http.MethodDelete, "/api/quizzes/"+quiz.ID.String(), otherToken, nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("non-owner delete status = %d, want 404", resp.StatusCode)
	}

	var fresh quizModel.QuizModel
	if err := db.First(&fresh, "id = ?", quiz.ID).Error; err != nil {
		t.Fatalf("reload quiz: %v", err)
	}
	if fresh.Title != "Arithmetic" {
		t.Fatalf("title = %q, non-owner write must not land", fresh.Title)
	}

	resp = jsonRequest(t, app, http.MethodPut, "/api/quizzes/"+quiz.ID.String(), ownerToken, patch)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("owner update status = %d, want 200", resp.StatusCode)
	}
}

func TestVerifyOTPSingleUse(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	dsn, cleanup := startPostgres(t, ctx)
	defer cleanup()
	app, db := newTestApp(t, dsn)

	user, _ := seedUser(t, db, constants.RoleStudent)

	code := "123456"
	expiry := time.Now().Add(10 * time.Minute)
	if err := db.Model(&user).Updates(map[string]interface{}{
		"reset_otp":        authService.HashOTP(code),
		"reset_otp_expiry": expiry,
	}).Error; err != nil {
		t.Fatalf("seed otp: %v", err)
	}

	payload := map[string]any{"email": user.Email, "otp": code}

	resp := jsonRequest(t, app, http.MethodPost, "/api/auth/verify-otp", "", payload)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first redemption status = %d, want 200", resp.StatusCode)
	}

	resp = jsonRequest(t, app, http.MethodPost, "/api/auth/verify-otp", "", payload)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("replay status = %d, want 400", resp.StatusCode)
	}

	var fresh userModel.UserModel
	if err := db.First(&fresh, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if fresh.ResetOTP != nil || fresh.ResetOTPExpiry != nil {
		t.Error("otp fields not cleared after redemption")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	dsn, cleanup := startPostgres(t, ctx)
	defer cleanup()
	app, _ := newTestApp(t, dsn)

	payload := map[string]any{
		"name":     "Grace Hopper",
		"email":    "grace@example.com",
		"password": "password123",
	}

	resp := jsonRequest(t, app, http.MethodPost, "/api/auth/signup", "", payload)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("first signup status = %d, want 201", resp.StatusCode)
	}

	// Same address, different case: the normalized unique index must
	// reject it.
	payload["email"] = "GRACE@Example.com"
	resp = jsonRequest(t, app, http.MethodPost, "/api/auth/signup", "", payload)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("duplicate signup status = %d, want 400", resp.StatusCode)
	}

	payload["email"] = "other@example.com"
	payload["role"] = "admin"
	resp = jsonRequest(t, app, http.MethodPost, "/api/auth/signup", "", payload)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("invalid-role signup status = %d, want 400", resp.StatusCode)
	}
}
