package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func callHandler(t *testing.T, handler fiber.Handler) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return resp.StatusCode, body
}

func TestJsonError(t *testing.T) {
	status, body := callHandler(t, func(c *fiber.Ctx) error {
		return JsonError(c, fiber.StatusConflict, "You have already submitted this quiz")
	})
	if status != fiber.StatusConflict {
		t.Errorf("status = %d, want 409", status)
	}
	if body["success"] != false {
		t.Error("success should be false")
	}
	if body["message"] != "You have already submitted this quiz" {
		t.Errorf("message = %v", body["message"])
	}
	if body["error_code"] != "CONFLICT" {
		t.Errorf("error_code = %v, want CONFLICT", body["error_code"])
	}
}

func TestJsonErrorDefaults(t *testing.T) {
	status, body := callHandler(t, func(c *fiber.Ctx) error {
		return JsonError(c, 0, "")
	})
	if status != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if body["error_code"] != "INTERNAL_ERROR" {
		t.Errorf("error_code = %v, want INTERNAL_ERROR", body["error_code"])
	}
}

func TestJsonOKEnvelope(t *testing.T) {
	status, body := callHandler(t, func(c *fiber.Ctx) error {
		return JsonOK(c, "", fiber.Map{"value": 42})
	})
	if status != fiber.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if body["success"] != true {
		t.Error("success should be true")
	}
	if body["message"] != "ok" {
		t.Errorf("message = %v, want default ok", body["message"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["value"] != float64(42) {
		t.Errorf("data = %v", body["data"])
	}
}

func TestJsonCreatedStatus(t *testing.T) {
	status, _ := callHandler(t, func(c *fiber.Ctx) error {
		return JsonCreated(c, "Result recorded", nil)
	})
	if status != fiber.StatusCreated {
		t.Errorf("status = %d, want 201", status)
	}
}

func TestJsonValidatorError(t *testing.T) {
	validate := validator.New()
	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,min=2"`
	}

	status, body := callHandler(t, func(c *fiber.Ctx) error {
		return JsonValidatorError(c, validate.Struct(form{Email: "not-an-email"}))
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if body["error_code"] != "VALIDATION_ERROR" {
		t.Errorf("error_code = %v, want VALIDATION_ERROR", body["error_code"])
	}
	fields, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("errors = %v, want per-field map", body["errors"])
	}
	if _, ok := fields["email"]; !ok {
		t.Error("errors map missing email")
	}
	if _, ok := fields["name"]; !ok {
		t.Error("errors map missing name")
	}
}

func TestJsonValidatorErrorPlainError(t *testing.T) {
	status, body := callHandler(t, func(c *fiber.Ctx) error {
		return JsonValidatorError(c, errors.New("bad payload"))
	})
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if body["error_code"] != "BAD_REQUEST" {
		t.Errorf("error_code = %v, want BAD_REQUEST", body["error_code"])
	}
}

func TestJsonValidationErrorFields(t *testing.T) {
	status, body := callHandler(t, func(c *fiber.Ctx) error {
		return JsonValidationError(c, "Validation failed", map[string][]string{
			"email": {"Email is required"},
		})
	})
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if body["error_code"] != "VALIDATION_ERROR" {
		t.Errorf("error_code = %v", body["error_code"])
	}
	if _, ok := body["errors"]; !ok {
		t.Error("errors map missing from response")
	}
}
