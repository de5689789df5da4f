package validators

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type slotRequest struct {
	Date  string `json:"date" binding:"required,ymd"`
	Time  string `json:"time" binding:"omitempty,hhmm"`
	Email string `json:"email" binding:"omitempty,email"`
}

func TestRegister_CustomTags(t *testing.T) {
	Register()

	if err := binding.Validator.ValidateStruct(&slotRequest{Date: "2025-11-01", Time: "09:30"}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	err := binding.Validator.ValidateStruct(&slotRequest{Date: "01/11/2025", Time: "9:30", Email: "nope"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}

	details := FieldErrors(err)
	if details["date"] == "" || details["time"] == "" || details["email"] == "" {
		t.Fatalf("expected json-named details, got %v", details)
	}
}

func TestFieldErrors_Malformed(t *testing.T) {
	d := FieldErrors(errors.New("unexpected EOF"))
	if d["body"] == "" {
		t.Fatalf("expected body detail, got %v", d)
	}
}
