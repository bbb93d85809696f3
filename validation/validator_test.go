package validation

import (
	"testing"

	"tareasapi/errors"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type taskRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

func TestValidate_Success(t *testing.T) {
	req := loginRequest{Username: "manu", Password: "1234"}
	if err := Validate(req); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}
}

func TestValidate_SingleMissingField(t *testing.T) {
	req := taskRequest{}
	err := Validate(req)
	if err == nil {
		t.Fatal("expected error for missing title")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", appErr.Code)
	}
	if appErr.Details["field"] != "title" {
		t.Errorf("expected field=title, got %v", appErr.Details["field"])
	}
	if appErr.HTTPStatus != 400 {
		t.Errorf("expected 400, got %d", appErr.HTTPStatus)
	}
}

func TestValidate_MultipleMissingFields(t *testing.T) {
	req := loginRequest{}
	err := Validate(req)
	if err == nil {
		t.Fatal("expected error for empty request")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT for multiple failures, got %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected []FieldError details, got %T", appErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(fields))
	}
}

func TestValidate_JSONTagNames(t *testing.T) {
	type renamed struct {
		DisplayName string `json:"display_name" validate:"required"`
	}
	err := Validate(renamed{})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Details["field"] != "display_name" {
		t.Errorf("expected json tag name in details, got %v", appErr.Details["field"])
	}
}

func TestValidate_MaxLength(t *testing.T) {
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	err := Validate(taskRequest{Title: string(long)})
	if err == nil {
		t.Fatal("expected error for over-long title")
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}
