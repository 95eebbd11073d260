package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shashiranjanraj/showroom/pkg/bind"
)

type reviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSONValid(t *testing.T) {
	var in reviewInput
	errs, err := bind.JSON(post(`{"rating":4,"comment":"solid"}`), &in)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if errs != nil {
		t.Fatalf("errs = %v", errs)
	}
	if in.Rating != 4 || in.Comment != "solid" {
		t.Errorf("decoded = %+v", in)
	}
}

func TestJSONValidationFailure(t *testing.T) {
	var in reviewInput
	errs, err := bind.JSON(post(`{"rating":9}`), &in)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if _, ok := errs["rating"]; !ok {
		t.Errorf("expected rating error, got: %v", errs)
	}
}

func TestJSONMalformed(t *testing.T) {
	var in reviewInput
	if _, err := bind.JSON(post(`{"rating":`), &in); err == nil {
		t.Error("expected decode error for truncated JSON")
	}
}

func TestJSONBodyTooLarge(t *testing.T) {
	var in reviewInput
	huge := `{"comment":"` + strings.Repeat("x", 5<<20) + `","rating":3}`
	if _, err := bind.JSON(post(huge), &in); err == nil {
		t.Error("expected error for oversized body")
	}
}
